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
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/mlnoga/starcolor/internal/blackbody"
)

// A horizontal color bar from centrality zero on the left to the saturated plateau on the right
type Legend struct {
	Params blackbody.Params
	Width  int
	Height int
}

func NewLegend(p blackbody.Params, width, height int) (*Legend, error) {
	if width < 2 || height < 1 {
		return nil, fmt.Errorf("legend of %dx%d pixels is too small", width, height)
	}
	return &Legend{Params: p, Width: width, Height: height}, nil
}

// Centrality shown at the given column
func (l *Legend) CentralityAt(x int) float64 {
	return l.Params.MaxExpectedCentrality * float64(x) / float64(l.Width-1)
}

// Renders the legend with 8 bits per channel
func (l *Legend) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	for x := 0; x < l.Width; x++ {
		c := l.Params.Color(l.CentralityAt(x))
		rgba := color.RGBA{c.R, c.G, c.B, 255}
		for y := 0; y < l.Height; y++ {
			img.SetRGBA(x, y, rgba)
		}
	}
	return img
}

// Renders the legend with 16 bits per channel from the unrounded curves
func (l *Legend) Image16() *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, l.Width, l.Height))
	for x := 0; x < l.Width; x++ {
		r, g, b := l.Params.ColorFloat(l.CentralityAt(x))
		c := color.RGBA64{to16(r), to16(g), to16(b), 65535}
		for y := 0; y < l.Height; y++ {
			img.SetRGBA64(x, y, c)
		}
	}
	return img
}

func to16(v float64) uint16 {
	return uint16(v/255*65535 + 0.5)
}

func (l *Legend) WritePNG(writer io.Writer) error {
	return png.Encode(writer, l.Image())
}

func (l *Legend) WriteJPG(writer io.Writer, quality int) error {
	return jpeg.Encode(writer, l.Image(), &jpeg.Options{Quality: quality})
}

func (l *Legend) WriteTIFF16(writer io.Writer) error {
	return tiff.Encode(writer, l.Image16(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Writes the legend to a file, choosing PNG, JPEG or 16-bit TIFF by suffix
func (l *Legend) WriteFile(fileName string) error {
	var encode func(io.Writer) error
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		encode = l.WritePNG
	case ".jpg", ".jpeg":
		encode = func(w io.Writer) error { return l.WriteJPG(w, 95) }
	case ".tif", ".tiff":
		encode = l.WriteTIFF16
	default:
		return fmt.Errorf("unknown suffix for legend file %s", fileName)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := encode(writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}
