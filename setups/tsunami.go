package setups

import (
	"fmt"
	"math"

	"github.com/notargets/goswe/netcdf"
)

const (
	// DefaultDryDelta is the minimum depth of wet cells and the minimum elevation of dry cells, in meters
	DefaultDryDelta = 20.
)

/*
ArtificialTsunami2d is a square ocean of constant Depth on [-Extent, Extent]^2 whose bottom is raised by a
sine shaped displacement inside |x|, |y| <= HalfWidth:

	d(x, y) = Amplitude * sin((x/HalfWidth + 1)*Pi) * (1 - (y/HalfWidth)^2)

The water surface starts flat, the displaced bottom makes the initial wave.
*/
type ArtificialTsunami2d struct {
	Depth     float64
	Amplitude float64
	HalfWidth float64
	Extent    float64
}

func (s *ArtificialTsunami2d) displacement(x, y float64) float64 {
	if math.Abs(x) > s.HalfWidth || math.Abs(y) > s.HalfWidth {
		return 0
	}
	yy := y / s.HalfWidth
	return s.Amplitude * math.Sin((x/s.HalfWidth+1)*math.Pi) * (1 - yy*yy)
}

func (s *ArtificialTsunami2d) GetHeight(_, _ float64) float64 { return s.Depth }

func (s *ArtificialTsunami2d) GetMomentumX(_, _ float64) float64 { return 0 }

func (s *ArtificialTsunami2d) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *ArtificialTsunami2d) GetBathymetry(x, y float64) float64 {
	return -s.Depth + s.displacement(x, y)
}

func (s *ArtificialTsunami2d) Bounds() (xMin, xMax, yMin, yMax float64) {
	return -s.Extent, s.Extent, -s.Extent, s.Extent
}

/*
TsunamiEvent reads the bathymetry and the vertical sea floor displacement of an earthquake from netCDF grids.
Values are taken from the nearest sample, the displacement is zero outside of its grid. Shallow sea and low
land are pushed Delta meters away from sea level so the coastline stays put:

	b < 0:  h = max(-b, Delta),  b = min(b, -Delta)
	b >= 0: h = 0,               b = max(b, Delta)

The displacement is added to the bottom after this, the water surface starts flat.
*/
type TsunamiEvent struct {
	Bathymetry   *netcdf.Grid
	Displacement *netcdf.Grid
	Delta        float64
}

func NewTsunamiEvent(files Files, delta float64) (s *TsunamiEvent, err error) {
	var (
		bVar, dVar = files.BathymetryVar, files.DisplacementVar
	)
	if bVar == "" {
		bVar = "z"
	}
	if dVar == "" {
		dVar = "z"
	}
	s = &TsunamiEvent{Delta: delta}
	if files.Bathymetry == "" {
		return nil, fmt.Errorf("setups: tsunami event needs a bathymetry file")
	}
	if s.Bathymetry, err = netcdf.ReadGrid(files.Bathymetry, bVar); err != nil {
		return nil, err
	}
	if files.Displacement != "" {
		if s.Displacement, err = netcdf.ReadGrid(files.Displacement, dVar); err != nil {
			return nil, err
		}
	}
	return
}

func (s *TsunamiEvent) inputBathymetry(x, y float64) (b float64) {
	b = s.Bathymetry.Sample(x, y)
	if b < 0 {
		b = math.Min(b, -s.Delta)
	} else {
		b = math.Max(b, s.Delta)
	}
	return
}

func (s *TsunamiEvent) displacement(x, y float64) float64 {
	if s.Displacement == nil {
		return 0
	}
	xMin, xMax, yMin, yMax := s.Displacement.Bounds()
	if x < xMin || x > xMax {
		return 0
	}
	if s.Displacement.NY() > 1 && (y < yMin || y > yMax) {
		return 0
	}
	return s.Displacement.Sample(x, y)
}

func (s *TsunamiEvent) GetHeight(x, y float64) float64 {
	b := s.Bathymetry.Sample(x, y)
	if b < 0 {
		return math.Max(-b, s.Delta)
	}
	return 0
}

func (s *TsunamiEvent) GetMomentumX(_, _ float64) float64 { return 0 }

func (s *TsunamiEvent) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *TsunamiEvent) GetBathymetry(x, y float64) float64 {
	return s.inputBathymetry(x, y) + s.displacement(x, y)
}

func (s *TsunamiEvent) Bounds() (xMin, xMax, yMin, yMax float64) {
	return s.Bathymetry.Bounds()
}

// CheckPoint restarts from a checkpoint, positions are mapped to the checkpoint cell containing them
type CheckPoint struct {
	cp *netcdf.Checkpoint
}

func NewCheckPoint(fileName string) (s *CheckPoint, err error) {
	if fileName == "" {
		return nil, fmt.Errorf("setups: checkpoint restart needs a checkpoint file")
	}
	s = &CheckPoint{}
	if s.cp, err = netcdf.ReadCheckpoint(fileName); err != nil {
		return nil, err
	}
	return
}

func (s *CheckPoint) index(x, y float64) int {
	var (
		cp = s.cp
		ix = int(math.Floor((x - cp.OriginX) / cp.DX))
		iy = 0
	)
	if cp.NY > 1 {
		iy = int(math.Floor((y - cp.OriginY) / cp.DY))
	}
	ix = min(max(ix, 0), cp.NX-1)
	iy = min(max(iy, 0), cp.NY-1)
	return ix + iy*cp.NX
}

func (s *CheckPoint) GetHeight(x, y float64) float64 { return s.cp.H[s.index(x, y)] }

func (s *CheckPoint) GetMomentumX(x, y float64) float64 { return s.cp.HU[s.index(x, y)] }

func (s *CheckPoint) GetMomentumY(x, y float64) float64 { return s.cp.HV[s.index(x, y)] }

func (s *CheckPoint) GetBathymetry(x, y float64) float64 { return s.cp.B[s.index(x, y)] }

func (s *CheckPoint) StartTime() float64 { return s.cp.Time }

func (s *CheckPoint) Bounds() (xMin, xMax, yMin, yMax float64) {
	var cp = s.cp
	return cp.OriginX, cp.OriginX + float64(cp.NX)*cp.DX, cp.OriginY, cp.OriginY + float64(cp.NY)*cp.DY
}

// Cells returns the cell counts of the checkpointed patch
func (s *CheckPoint) Cells() (nx, ny int) { return s.cp.NX, s.cp.NY }
