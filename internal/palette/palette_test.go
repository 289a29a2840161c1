// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package palette

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/mlnoga/starcolor/internal/blackbody"
)

func TestSample(t *testing.T) {
	entries, err := Sample(blackbody.DefaultParams(), 3)
	if err != nil {
		t.Fatalf("Sample error %v", err)
	}
	want := []Entry{
		{0, 800, blackbody.RGB{R: 255, G: 46, B: 0}, "#ff2e00"},
		{0.25, 22929.46187105181, blackbody.RGB{R: 166, G: 196, B: 255}, "#a6c4ff"},
		{0.5, 30000, blackbody.RGB{R: 159, G: 190, B: 255}, "#9fbeff"},
	}
	for i, e := range entries {
		w := want[i]
		if e.Centrality != w.Centrality || math.Abs(e.Kelvin-w.Kelvin) > 1e-6 || e.Color != w.Color || e.Hex != w.Hex {
			t.Errorf("entry %d=%+v; want %+v", i, e, w)
		}
	}

	if _, err := Sample(blackbody.DefaultParams(), 1); err == nil {
		t.Errorf("Sample(1)=nil error; want error")
	}
}

func TestHexAndDistance(t *testing.T) {
	c, err := ParseHex("#9fbeff")
	if err != nil {
		t.Fatalf("ParseHex error %v", err)
	}
	if want := (blackbody.RGB{R: 159, G: 190, B: 255}); c != want {
		t.Errorf("ParseHex=%v; want %v", c, want)
	}
	if _, err := ParseHex("not a color"); err == nil {
		t.Errorf("ParseHex(garbage)=nil error; want error")
	}
	if d := Distance(c, c); d != 0 {
		t.Errorf("Distance(c,c)=%f; want 0", d)
	}
	warm, cool := blackbody.GetColor(0), blackbody.GetColor(0.5)
	if d := Distance(blackbody.RGB{}, blackbody.RGB{R: 255, G: 255, B: 255}); math.Abs(d-1) > 1e-3 {
		t.Errorf("Distance(black,white)=%f; want 1", d)
	}
	if d := Distance(warm, cool); d < 0.1 {
		t.Errorf("Distance(warm,cool)=%f; want clearly distinct colors", d)
	}
}

func TestNeighbouringSamplesAreDistinct(t *testing.T) {
	// the exponent must keep the long tail of small centralities apart
	p := blackbody.DefaultParams()
	tail := []float64{0, 0.001, 0.005, 0.01, 0.05}
	for i := 1; i < len(tail); i++ {
		d := Distance(p.Color(tail[i-1]), p.Color(tail[i]))
		if d < 0.02 {
			t.Errorf("Distance(Color(%g), Color(%g))=%f; want visibly distinct", tail[i-1], tail[i], d)
		}
	}
}

func TestInvert(t *testing.T) {
	p := blackbody.DefaultParams()
	tcs := []struct {
		Centrality float64
		Tolerance  float64 // relative, in Kelvin
	}{
		{0.001, 0.02},
		{0.01, 0.05},
		{0.1, 0.05},
		{0.25, 0.05},
	}
	for _, tc := range tcs {
		inv, err := Invert(p, p.Color(tc.Centrality))
		if err != nil {
			t.Fatalf("Invert error %v", err)
		}
		want := p.Temperature(tc.Centrality)
		if math.Abs(inv.Kelvin-want)/want > tc.Tolerance {
			t.Errorf("Invert(Color(%g)) Kelvin=%f; want %f", tc.Centrality, inv.Kelvin, want)
		}
		if inv.Distance > 0.01 {
			t.Errorf("Invert(Color(%g)) distance=%f; want <0.01", tc.Centrality, inv.Distance)
		}
	}
}

func TestInvertPureRed(t *testing.T) {
	inv, err := Invert(blackbody.DefaultParams(), blackbody.RGB{R: 255})
	if err != nil {
		t.Fatalf("Invert error %v", err)
	}
	if inv.Centrality > 1e-9 || inv.Kelvin != blackbody.DefaultMinTempKelvin {
		t.Errorf("Invert(red)=%+v; want centrality 0", inv)
	}
}

func TestInvertRejectsBadParams(t *testing.T) {
	if _, err := Invert(blackbody.Params{}, blackbody.RGB{}); err == nil {
		t.Errorf("Invert(zero params)=nil error; want error")
	}
}

func TestLegendImage(t *testing.T) {
	l, err := NewLegend(blackbody.DefaultParams(), 3, 2)
	if err != nil {
		t.Fatalf("NewLegend error %v", err)
	}
	img := l.Image()
	want := []color.RGBA{{255, 46, 0, 255}, {166, 196, 255, 255}, {159, 190, 255, 255}}
	for x, w := range want {
		for y := 0; y < 2; y++ {
			if got := img.RGBAAt(x, y); got != w {
				t.Errorf("pixel(%d,%d)=%v; want %v", x, y, got, w)
			}
		}
	}

	img16 := l.Image16()
	if c := img16.RGBA64At(0, 0); c.R != 65535 || c.B != 0 || c.A != 65535 {
		t.Errorf("16-bit pixel(0,0)=%v; want full red, no blue", c)
	}
	if c := img16.RGBA64At(2, 1); c.B != 65535 {
		t.Errorf("16-bit pixel(2,1)=%v; want full blue", c)
	}

	if _, err := NewLegend(blackbody.DefaultParams(), 1, 1); err == nil {
		t.Errorf("NewLegend(1x1)=nil error; want error")
	}
}

func TestLegendWriteFile(t *testing.T) {
	l, _ := NewLegend(blackbody.DefaultParams(), 64, 4)
	dir := t.TempDir()

	pngName := filepath.Join(dir, "legend.png")
	if err := l.WriteFile(pngName); err != nil {
		t.Fatalf("WriteFile(png) error %v", err)
	}
	f, err := os.Open(pngName)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode error %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 4 {
		t.Errorf("png bounds %v; want 64x4", b)
	}
	r, g, b, _ := decoded.At(63, 0).RGBA()
	if want := l.Params.Color(l.Params.MaxExpectedCentrality); r>>8 != uint32(want.R) || g>>8 != uint32(want.G) || b>>8 != uint32(want.B) {
		t.Errorf("png pixel(63,0)=%d,%d,%d; want %v", r>>8, g>>8, b>>8, want)
	}

	tiffName := filepath.Join(dir, "legend.tiff")
	if err := l.WriteFile(tiffName); err != nil {
		t.Fatalf("WriteFile(tiff) error %v", err)
	}
	tf, err := os.Open(tiffName)
	if err != nil {
		t.Fatal(err)
	}
	defer tf.Close()
	decodedTIFF, err := tiff.Decode(tf)
	if err != nil {
		t.Fatalf("tiff.Decode error %v", err)
	}
	if b := decodedTIFF.Bounds(); b.Dx() != 64 || b.Dy() != 4 {
		t.Errorf("tiff bounds %v; want 64x4", b)
	}

	if err := l.WriteFile(filepath.Join(dir, "legend.jpg")); err != nil {
		t.Errorf("WriteFile(jpg) error %v", err)
	}
	if err := l.WriteFile(filepath.Join(dir, "legend.bmp")); err == nil {
		t.Errorf("WriteFile(bmp)=nil error; want error")
	}
}
