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

package rest

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	nl "github.com/mlnoga/starcolor/internal"
	"github.com/mlnoga/starcolor/internal/batch"
	"github.com/mlnoga/starcolor/internal/blackbody"
	"github.com/mlnoga/starcolor/internal/palette"
	"github.com/mlnoga/starcolor/web"
)

const (
	defaultPaletteSize = 16
	maxPaletteSize     = 1024
	maxLegendWidth     = 4096
	maxLegendHeight    = 1024
)

type server struct {
	ctx    *nl.Context
	params blackbody.Params
}

// Builds the HTTP router serving colors for the given default parameters
func NewRouter(ctx *nl.Context, params blackbody.Params) *gin.Engine {
	s := &server{ctx: ctx, params: params}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(ctx.Log), gin.Recovery())
	r.GET("/", getIndex)
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", getPing)
			v1.GET("/params", s.getParams)
			v1.GET("/color", s.getColor)
			v1.GET("/kelvin", s.getKelvin)
			v1.POST("/colors", s.postColors)
			v1.POST("/stats", s.postStats)
			v1.GET("/palette", s.getPalette)
			v1.GET("/invert", s.getInvert)
			v1.GET("/legend.png", s.getLegend)
		}
	}
	return r
}

// Listens and serves on the given address, e.g. ":8080"
func Serve(ctx *nl.Context, params blackbody.Params, addr string) error {
	fmt.Fprintf(ctx.Log, "Serving %s on %s\n", params, addr)
	return NewRouter(ctx, params).Run(addr)
}

func getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Parses a required, finite float query parameter
func queryFloat(c *gin.Context, name string) (float64, error) {
	s, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("missing query parameter '%s'", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("query parameter '%s' must be a finite number, got '%s'", name, s)
	}
	return v, nil
}

// Parses an optional integer query parameter within [min, max]
func queryInt(c *gin.Context, name string, def, min, max int) (int, error) {
	s, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return 0, fmt.Errorf("query parameter '%s' must be an integer in [%d,%d], got '%s'", name, min, max, s)
	}
	return v, nil
}

func colorJSON(color blackbody.RGB) gin.H {
	return gin.H{"r": color.R, "g": color.G, "b": color.B, "hex": color.Hex()}
}

func (s *server) getParams(c *gin.Context) {
	c.JSON(http.StatusOK, s.params)
}

func (s *server) getColor(c *gin.Context) {
	centrality, err := queryFloat(c, "centrality")
	if err != nil {
		badRequest(c, err)
		return
	}
	kelvin := s.params.Temperature(centrality)
	res := colorJSON(blackbody.KelvinToRGB(kelvin))
	res["centrality"], res["kelvin"] = centrality, kelvin
	c.JSON(http.StatusOK, res)
}

func (s *server) getKelvin(c *gin.Context) {
	kelvin, err := queryFloat(c, "k")
	if err != nil {
		badRequest(c, err)
		return
	}
	res := colorJSON(blackbody.KelvinToRGB(kelvin))
	res["kelvin"] = kelvin
	c.JSON(http.StatusOK, res)
}

type postColorsArgs struct {
	Nodes  []batch.Node      `json:"nodes"`
	Params *blackbody.Params `json:"params"`
}

// Binds a batch of nodes and its parameters from the request body. Parameters
// given in the request override the server defaults field by field. Answers
// the request and returns false if the body is invalid or too large.
func (s *server) bindNodes(c *gin.Context) ([]batch.Node, blackbody.Params, bool) {
	p := s.params
	args := postColorsArgs{Params: &p}
	if err := c.ShouldBindJSON(&args); err != nil {
		badRequest(c, err)
		return nil, p, false
	}
	if args.Params == nil {
		args.Params = &s.params
	}
	if err := args.Params.Validate(); err != nil {
		badRequest(c, err)
		return nil, p, false
	}
	if len(args.Nodes) > s.ctx.MaxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("%d nodes exceed the batch limit of %d", len(args.Nodes), s.ctx.MaxBatch),
		})
		return nil, p, false
	}
	return args.Nodes, *args.Params, true
}

func (s *server) postColors(c *gin.Context) {
	nodes, p, ok := s.bindNodes(c)
	if !ok {
		return
	}
	colored := batch.Colorize(nodes, p, s.ctx.MaxThreads)
	c.JSON(http.StatusOK, gin.H{"nodes": colored})
}

func (s *server) postStats(c *gin.Context) {
	nodes, p, ok := s.bindNodes(c)
	if !ok {
		return
	}
	summary, err := batch.Summarize(nodes, p)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *server) getPalette(c *gin.Context) {
	n, err := queryInt(c, "n", defaultPaletteSize, 2, maxPaletteSize)
	if err != nil {
		badRequest(c, err)
		return
	}
	entries, err := palette.Sample(s.params, n)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"params": s.params, "entries": entries})
}

func (s *server) getInvert(c *gin.Context) {
	target, err := palette.ParseHex(c.Query("hex"))
	if err != nil {
		badRequest(c, fmt.Errorf("query parameter 'hex' must be a color like #9fbeff: %w", err))
		return
	}
	inv, err := palette.Invert(s.params, target)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (s *server) getLegend(c *gin.Context) {
	width, err := queryInt(c, "w", 512, 2, maxLegendWidth)
	if err != nil {
		badRequest(c, err)
		return
	}
	height, err := queryInt(c, "h", 32, 1, maxLegendHeight)
	if err != nil {
		badRequest(c, err)
		return
	}
	legend, err := palette.NewLegend(s.params, width, height)
	if err != nil {
		badRequest(c, err)
		return
	}
	var buf bytes.Buffer
	if err := legend.WritePNG(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
