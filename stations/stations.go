package stations

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/im7mortal/UTM"

	"github.com/notargets/goswe/WavePropagation"
)

/*
Station records the state of one cell over time. The position is given either in domain coordinates
(posX, posY) or geographically (lat, lon), which is projected to UTM and shifted by the domain's UTM offset.
The bare keys x and y are avoided, YAML 1.1 reads y as a boolean.
*/
type Station struct {
	Name string   `json:"name"`
	X    float64  `json:"posX"`
	Y    float64  `json:"posY"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// Projection places UTM coordinates into the domain, domain = UTM - (Easting0, Northing0)
type Projection struct {
	Zone      int     `json:"zone"`
	Easting0  float64 `json:"easting0"`
	Northing0 float64 `json:"northing0"`
}

// ReadStations parses a YAML list of stations
func ReadStations(fileName string) (sts []Station, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return nil, fmt.Errorf("stations: reading %s: %w", fileName, err)
	}
	if err = yaml.Unmarshal(data, &sts); err != nil {
		return nil, fmt.Errorf("stations: parsing %s: %w", fileName, err)
	}
	return
}

// Locate resolves geographic station positions into domain coordinates
func (st *Station) Locate(proj Projection) (err error) {
	if st.Lat == nil && st.Lon == nil {
		return
	}
	if st.Lat == nil || st.Lon == nil {
		return fmt.Errorf("stations: %s needs both lat and lon", st.Name)
	}
	easting, northing, zone, _, err := UTM.FromLatLon(*st.Lat, *st.Lon, *st.Lat >= 0)
	if err != nil {
		return fmt.Errorf("stations: projecting %s: %w", st.Name, err)
	}
	if proj.Zone != 0 && zone != proj.Zone {
		return fmt.Errorf("stations: %s lies in UTM zone %d, the domain is in zone %d", st.Name, zone, proj.Zone)
	}
	st.X, st.Y = easting-proj.Easting0, northing-proj.Northing0
	return
}

// Domain is the cell layout used to find the cell holding a station
type Domain struct {
	NX, NY           int
	DX, DY           float64
	OriginX, OriginY float64
}

func (d Domain) cell(x, y float64) (ix, iy int, ok bool) {
	ix = int(math.Floor((x - d.OriginX) / d.DX))
	iy = 0
	if d.NY > 1 {
		iy = int(math.Floor((y - d.OriginY) / d.DY))
	}
	ok = ix >= 0 && ix < d.NX && iy >= 0 && iy < d.NY
	return
}

/*
Recorder appends the state at every station cell to one CSV file per station, columns
time,height,momentum_x,momentum_y,bathymetry. Capture only writes once the station interval has passed since
the last written row.
*/
type Recorder struct {
	Stations []Station
	Interval float64
	cells    [][2]int
	files    []*os.File
	writers  []*csv.Writer
	nextTime float64
}

func NewRecorder(sts []Station, outputDir string, interval float64, domain Domain, proj Projection) (rc *Recorder, err error) {
	rc = &Recorder{
		Stations: sts,
		Interval: interval,
		cells:    make([][2]int, len(sts)),
		nextTime: math.Inf(-1),
	}
	for i := range rc.Stations {
		st := &rc.Stations[i]
		if err = st.Locate(proj); err != nil {
			return nil, err
		}
		ix, iy, ok := domain.cell(st.X, st.Y)
		if !ok {
			return nil, fmt.Errorf("stations: %s at (%v, %v) is outside the domain", st.Name, st.X, st.Y)
		}
		rc.cells[i] = [2]int{ix, iy}
	}
	for _, st := range rc.Stations {
		var f *os.File
		if f, err = os.Create(filepath.Join(outputDir, st.Name+".csv")); err != nil {
			rc.Close()
			return nil, fmt.Errorf("stations: %w", err)
		}
		w := csv.NewWriter(f)
		if err = w.Write([]string{"time", "height", "momentum_x", "momentum_y", "bathymetry"}); err != nil {
			f.Close()
			rc.Close()
			return nil, fmt.Errorf("stations: %w", err)
		}
		rc.files = append(rc.files, f)
		rc.writers = append(rc.writers, w)
	}
	return
}

// Capture records all stations at time t if the interval has passed
func (rc *Recorder) Capture(t float64, wp WavePropagation.WavePropagation) (err error) {
	if t < rc.nextTime {
		return
	}
	var (
		stride       = wp.GetStride()
		h, hu, hv, b = wp.GetHeight(), wp.GetMomentumX(), wp.GetMomentumY(), wp.GetBathymetry()
		format       = func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
	)
	for n, cell := range rc.cells {
		var (
			ind   = cell[0] + cell[1]*stride
			hvInd float64
		)
		if hv != nil {
			hvInd = hv[ind]
		}
		row := []string{format(t), format(h[ind]), format(hu[ind]), format(hvInd), format(b[ind])}
		if err = rc.writers[n].Write(row); err != nil {
			return fmt.Errorf("stations: writing %s: %w", rc.Stations[n].Name, err)
		}
		rc.writers[n].Flush()
	}
	rc.nextTime = t + rc.Interval
	return
}

func (rc *Recorder) Close() (err error) {
	for n, f := range rc.files {
		rc.writers[n].Flush()
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}
	rc.files, rc.writers = nil, nil
	return
}
