package netcdf

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

var checkpointVars = []string{"h", "hu", "hv", "b"}

// Checkpoint is the full resolution state of a patch, fields are row major with NX values per row
type Checkpoint struct {
	NX, NY           int
	DX, DY           float64
	OriginX, OriginY float64
	Time             float64
	H, HU, HV, B     []float64
}

func NewCheckpoint(nx, ny int) (cp *Checkpoint) {
	cp = &Checkpoint{
		NX: nx, NY: ny,
		H:  make([]float64, nx*ny),
		HU: make([]float64, nx*ny),
		HV: make([]float64, nx*ny),
		B:  make([]float64, nx*ny),
	}
	return
}

// Gather copies strided patch fields into the checkpoint, hv may be nil
func (cp *Checkpoint) Gather(h, hu, hv, b []float64, stride int) {
	src := [][]float64{h, hu, hv, b}
	dst := [][]float64{cp.H, cp.HU, cp.HV, cp.B}
	for n := range src {
		if src[n] == nil {
			continue
		}
		for j := 0; j < cp.NY; j++ {
			copy(dst[n][j*cp.NX:(j+1)*cp.NX], src[n][j*stride:j*stride+cp.NX])
		}
	}
}

func WriteCheckpoint(fileName string, cp *Checkpoint) (err error) {
	h := cdf.NewHeader([]string{"y", "x"}, []int{cp.NY, cp.NX})
	h.AddAttribute("", "title", "shallow water checkpoint")
	h.AddAttribute("", "time", []float64{cp.Time})
	h.AddAttribute("", "dx", []float64{cp.DX})
	h.AddAttribute("", "dy", []float64{cp.DY})
	h.AddAttribute("", "x0", []float64{cp.OriginX})
	h.AddAttribute("", "y0", []float64{cp.OriginY})
	for _, name := range checkpointVars {
		h.AddVariable(name, []string{"y", "x"}, []float64{0})
	}
	h.Define()

	// Written beside the target, then renamed over it
	tmpName := fileName + ".tmp"
	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("netcdf: creating checkpoint: %w", err)
	}
	cf, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return fmt.Errorf("netcdf: writing checkpoint header: %w", err)
	}
	for n, data := range [][]float64{cp.H, cp.HU, cp.HV, cp.B} {
		w := cf.Writer(checkpointVars[n], []int{0, 0}, []int{cp.NY, cp.NX})
		if _, err = w.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("netcdf: writing checkpoint %s: %w", checkpointVars[n], err)
		}
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("netcdf: closing checkpoint: %w", err)
	}
	if err = os.Rename(tmpName, fileName); err != nil {
		return fmt.Errorf("netcdf: moving checkpoint into place: %w", err)
	}
	return
}

func ReadCheckpoint(fileName string) (cp *Checkpoint, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("netcdf: opening checkpoint: %w", err)
	}
	defer f.Close()
	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("netcdf: reading checkpoint header: %w", err)
	}
	dims := cf.Header.Lengths("h")
	if len(dims) != 2 {
		return nil, fmt.Errorf("netcdf: %s is not a checkpoint file", fileName)
	}
	cp = NewCheckpoint(dims[1], dims[0])
	attr := func(name string) (v float64) {
		if vals, ok := cf.Header.GetAttribute("", name).([]float64); ok && len(vals) > 0 {
			v = vals[0]
		}
		return
	}
	cp.Time = attr("time")
	cp.DX, cp.DY = attr("dx"), attr("dy")
	cp.OriginX, cp.OriginY = attr("x0"), attr("y0")
	for n, dst := range [][]float64{cp.H, cp.HU, cp.HV, cp.B} {
		var data []float64
		if data, err = readVar(cf, checkpointVars[n], nil, nil); err != nil {
			return nil, err
		}
		copy(dst, data)
	}
	return
}
