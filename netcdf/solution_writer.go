package netcdf

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

var solutionVars = []string{"height", "momentum_x", "momentum_y"}

/*
SolutionWriter writes time frames of a patch into a netCDF file with the dimensions (time, y, x), time being
the record dimension. With Coarsen = k each output cell is the average of a k*k block of patch cells, blocks
cut off at the upper edges average over the cells they contain.
*/
type SolutionWriter struct {
	FileName     string
	NX, NY       int // Patch cells
	Coarsen      int
	nxOut, nyOut int
	file         *os.File
	cf           *cdf.File
	nRecords     int
}

func NewSolutionWriter(fileName string, nx, ny int, dx, dy, originX, originY float64, coarsen int) (sw *SolutionWriter, err error) {
	if coarsen < 1 {
		coarsen = 1
	}
	sw = &SolutionWriter{
		FileName: fileName,
		NX:       nx,
		NY:       ny,
		Coarsen:  coarsen,
		nxOut:    (nx + coarsen - 1) / coarsen,
		nyOut:    (ny + coarsen - 1) / coarsen,
	}
	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{0, sw.nyOut, sw.nxOut})
	h.AddAttribute("", "title", "shallow water solution")
	h.AddAttribute("", "coarsen", []int32{int32(coarsen)})
	h.AddVariable("time", []string{"time"}, []float32{0})
	h.AddAttribute("time", "units", "seconds since simulation start")
	h.AddVariable("x", []string{"x"}, []float32{0})
	h.AddAttribute("x", "units", "m")
	h.AddVariable("y", []string{"y"}, []float32{0})
	h.AddAttribute("y", "units", "m")
	h.AddVariable("bathymetry", []string{"y", "x"}, []float32{0})
	h.AddAttribute("bathymetry", "units", "m")
	for _, name := range solutionVars {
		h.AddVariable(name, []string{"time", "y", "x"}, []float32{0})
	}
	h.AddAttribute("height", "units", "m")
	h.AddAttribute("momentum_x", "units", "m^2/s")
	h.AddAttribute("momentum_y", "units", "m^2/s")
	h.Define()

	if sw.file, err = os.Create(fileName); err != nil {
		return nil, fmt.Errorf("netcdf: creating solution file: %w", err)
	}
	if sw.cf, err = cdf.Create(sw.file, h); err != nil {
		sw.file.Close()
		return nil, fmt.Errorf("netcdf: writing header of %s: %w", fileName, err)
	}
	// Cell centre coordinates of the output cells
	var (
		X = make([]float32, sw.nxOut)
		Y = make([]float32, sw.nyOut)
	)
	for i := range X {
		X[i] = float32(originX + (float64(i*coarsen)+0.5*float64(min(coarsen, nx-i*coarsen)))*dx)
	}
	for j := range Y {
		Y[j] = float32(originY + (float64(j*coarsen)+0.5*float64(min(coarsen, ny-j*coarsen)))*dy)
	}
	if _, err = sw.cf.Writer("x", []int{0}, []int{sw.nxOut}).Write(X); err != nil {
		sw.file.Close()
		return nil, fmt.Errorf("netcdf: writing x: %w", err)
	}
	if _, err = sw.cf.Writer("y", []int{0}, []int{sw.nyOut}).Write(Y); err != nil {
		sw.file.Close()
		return nil, fmt.Errorf("netcdf: writing y: %w", err)
	}
	return
}

// coarsen averages a strided patch field onto the output grid, a nil field writes zeros
func (sw *SolutionWriter) coarsen(A []float64, stride int) (buf []float32) {
	var (
		k = sw.Coarsen
	)
	buf = make([]float32, sw.nxOut*sw.nyOut)
	if A == nil {
		return
	}
	for jOut := 0; jOut < sw.nyOut; jOut++ {
		for iOut := 0; iOut < sw.nxOut; iOut++ {
			var (
				sum float64
				n   int
			)
			for j := jOut * k; j < min((jOut+1)*k, sw.NY); j++ {
				for i := iOut * k; i < min((iOut+1)*k, sw.NX); i++ {
					sum += A[i+j*stride]
					n++
				}
			}
			buf[iOut+jOut*sw.nxOut] = float32(sum / float64(n))
		}
	}
	return
}

// WriteBathymetry stores the time independent bathymetry, stride is the row stride of b
func (sw *SolutionWriter) WriteBathymetry(b []float64, stride int) (err error) {
	w := sw.cf.Writer("bathymetry", []int{0, 0}, []int{sw.nyOut, sw.nxOut})
	if _, err = w.Write(sw.coarsen(b, stride)); err != nil {
		return fmt.Errorf("netcdf: writing bathymetry: %w", err)
	}
	return
}

// WriteTimeStep appends one frame, hv may be nil for 1D patches
func (sw *SolutionWriter) WriteTimeStep(h, hu, hv []float64, stride int, t float64) (err error) {
	var (
		rec    = sw.nRecords
		fields = [][]float64{h, hu, hv}
	)
	if _, err = sw.cf.Writer("time", []int{rec}, []int{rec + 1}).Write([]float32{float32(t)}); err != nil {
		return fmt.Errorf("netcdf: writing time of frame %d: %w", rec, err)
	}
	for n, name := range solutionVars {
		w := sw.cf.Writer(name, []int{rec, 0, 0}, []int{rec + 1, sw.nyOut, sw.nxOut})
		if _, err = w.Write(sw.coarsen(fields[n], stride)); err != nil {
			return fmt.Errorf("netcdf: writing %s of frame %d: %w", name, rec, err)
		}
	}
	sw.nRecords++
	if err = cdf.UpdateNumRecs(sw.file); err != nil {
		return fmt.Errorf("netcdf: updating record count: %w", err)
	}
	return
}

func (sw *SolutionWriter) NumFrames() int { return sw.nRecords }

func (sw *SolutionWriter) Close() (err error) {
	if sw.file == nil {
		return
	}
	if err = cdf.UpdateNumRecs(sw.file); err != nil {
		sw.file.Close()
		return fmt.Errorf("netcdf: updating record count: %w", err)
	}
	err = sw.file.Close()
	sw.file = nil
	return
}

// SolutionReader reads frames back from a file written by SolutionWriter
type SolutionReader struct {
	file    *os.File
	cf      *cdf.File
	NX, NY  int
	nFrames int
}

func OpenSolution(fileName string) (sr *SolutionReader, err error) {
	sr = &SolutionReader{}
	if sr.file, err = os.Open(fileName); err != nil {
		return nil, fmt.Errorf("netcdf: opening solution: %w", err)
	}
	if sr.cf, err = cdf.Open(sr.file); err != nil {
		sr.file.Close()
		return nil, fmt.Errorf("netcdf: reading header of %s: %w", fileName, err)
	}
	dims := sr.cf.Header.Lengths("height")
	if len(dims) != 3 {
		sr.file.Close()
		return nil, fmt.Errorf("netcdf: %s has no height variable", fileName)
	}
	sr.NY, sr.NX = dims[1], dims[2]
	// The header keeps a zero length for the record dimension, the count follows from the file size
	var fi os.FileInfo
	if fi, err = sr.file.Stat(); err != nil {
		sr.file.Close()
		return nil, fmt.Errorf("netcdf: %w", err)
	}
	sr.nFrames = int(sr.cf.Header.NumRecs(fi.Size()))
	return
}

func (sr *SolutionReader) NumFrames() int { return sr.nFrames }

func (sr *SolutionReader) Time(rec int) (t float64, err error) {
	var data []float64
	if data, err = readVar(sr.cf, "time", []int{rec}, []int{rec + 1}); err != nil {
		return
	}
	t = data[0]
	return
}

// Frame returns one record of height, momentum_x or momentum_y, row major
func (sr *SolutionReader) Frame(varName string, rec int) (data []float64, err error) {
	if rec < 0 || rec >= sr.NumFrames() {
		return nil, fmt.Errorf("netcdf: frame %d out of range [0, %d)", rec, sr.NumFrames())
	}
	return readVar(sr.cf, varName, []int{rec, 0, 0}, []int{rec + 1, sr.NY, sr.NX})
}

// Field reads a variable without a time dimension such as x, y or bathymetry
func (sr *SolutionReader) Field(varName string) (data []float64, err error) {
	return readVar(sr.cf, varName, nil, nil)
}

func (sr *SolutionReader) Close() error { return sr.file.Close() }

// readVar reads a float or double variable between begin and end, nil bounds read all of it
func readVar(cf *cdf.File, varName string, begin, end []int) (data []float64, err error) {
	dims := cf.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("netcdf: variable %s not in file", varName)
	}
	if begin == nil {
		begin = make([]int, len(dims))
		end = dims
	}
	n := 1
	for i := range dims {
		n *= end[i] - begin[i]
	}
	r := cf.Reader(varName, begin, end)
	buf := r.Zero(n)
	if _, err = r.Read(buf); err != nil {
		return nil, fmt.Errorf("netcdf: reading %s: %w", varName, err)
	}
	data = make([]float64, n)
	switch vals := buf.(type) {
	case []float32:
		for i, v := range vals {
			data[i] = float64(v)
		}
	case []float64:
		copy(data, vals)
	case []int32:
		for i, v := range vals {
			data[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("netcdf: unsupported type %T for %s", buf, varName)
	}
	return
}
