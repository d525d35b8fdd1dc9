package netcdf

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ctessum/cdf"
)

/*
Grid is a regular sample grid of a scalar such as bathymetry or a vertical sea floor displacement, the layout
used by GEBCO style files: coordinate variables x and y, and a variable z(y, x). A 1D grid has a single row
and Y = [0].
*/
type Grid struct {
	X, Y []float64
	Z    []float64 // Row major, len(X) values per row
}

func (g *Grid) NX() int { return len(g.X) }

func (g *Grid) NY() int { return len(g.Y) }

// Bounds returns the extent of the sample positions
func (g *Grid) Bounds() (xMin, xMax, yMin, yMax float64) {
	return g.X[0], g.X[len(g.X)-1], g.Y[0], g.Y[len(g.Y)-1]
}

// Sample returns the value of the sample closest to (x, y), positions outside the grid use the edge samples
func (g *Grid) Sample(x, y float64) float64 {
	return g.Z[nearest(g.X, x)+nearest(g.Y, y)*len(g.X)]
}

// nearest finds the index of the value in ascending A closest to v
func nearest(A []float64, v float64) (i int) {
	i = sort.SearchFloat64s(A, v)
	switch {
	case i == 0:
		return 0
	case i == len(A):
		return len(A) - 1
	case math.Abs(A[i-1]-v) <= math.Abs(A[i]-v):
		return i - 1
	}
	return i
}

// ReadGrid reads the variable varName with its x and optional y coordinates
func ReadGrid(fileName, varName string) (g *Grid, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("netcdf: opening grid: %w", err)
	}
	defer f.Close()
	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("netcdf: reading grid header of %s: %w", fileName, err)
	}
	g = &Grid{}
	if g.X, err = readVar(cf, "x", nil, nil); err != nil {
		return nil, err
	}
	if len(cf.Header.Lengths("y")) > 0 {
		if g.Y, err = readVar(cf, "y", nil, nil); err != nil {
			return nil, err
		}
	} else {
		g.Y = []float64{0}
	}
	if g.Z, err = readVar(cf, varName, nil, nil); err != nil {
		return nil, err
	}
	if len(g.Z) != len(g.X)*len(g.Y) {
		return nil, fmt.Errorf("netcdf: %s in %s has %d values, expected %d x %d",
			varName, fileName, len(g.Z), len(g.Y), len(g.X))
	}
	if !sort.Float64sAreSorted(g.X) || !sort.Float64sAreSorted(g.Y) {
		return nil, fmt.Errorf("netcdf: coordinates in %s are not ascending", fileName)
	}
	return
}

// WriteGrid writes g as variable varName, 1D grids get no y dimension
func WriteGrid(fileName, varName string, g *Grid) (err error) {
	var (
		h    *cdf.Header
		dims []string
	)
	if len(g.Z) != len(g.X)*len(g.Y) {
		return fmt.Errorf("netcdf: grid has %d values, expected %d x %d", len(g.Z), len(g.Y), len(g.X))
	}
	if len(g.Y) == 1 {
		dims = []string{"x"}
		h = cdf.NewHeader(dims, []int{len(g.X)})
	} else {
		dims = []string{"y", "x"}
		h = cdf.NewHeader(dims, []int{len(g.Y), len(g.X)})
		h.AddVariable("y", []string{"y"}, []float64{0})
	}
	h.AddVariable("x", []string{"x"}, []float64{0})
	h.AddVariable(varName, dims, []float32{0})
	h.Define()

	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("netcdf: creating grid: %w", err)
	}
	defer f.Close()
	cf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("netcdf: writing grid header: %w", err)
	}
	if _, err = cf.Writer("x", []int{0}, []int{len(g.X)}).Write(g.X); err != nil {
		return fmt.Errorf("netcdf: writing x: %w", err)
	}
	if len(g.Y) > 1 {
		if _, err = cf.Writer("y", []int{0}, []int{len(g.Y)}).Write(g.Y); err != nil {
			return fmt.Errorf("netcdf: writing y: %w", err)
		}
	}
	Z := make([]float32, len(g.Z))
	for i, z := range g.Z {
		Z[i] = float32(z)
	}
	end := cf.Header.Lengths(varName)
	if _, err = cf.Writer(varName, make([]int, len(end)), end).Write(Z); err != nil {
		return fmt.Errorf("netcdf: writing %s: %w", varName, err)
	}
	return
}
