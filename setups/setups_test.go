package setups

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goswe/netcdf"
)

func TestSetupType(t *testing.T) {
	assert.Equal(t, SETUP_DamBreak1d, NewSetupType("DamBreak1d"))
	assert.Equal(t, SETUP_TsunamiEvent, NewSetupType("tsunamiEvent2d"))
	assert.Equal(t, SETUP_TsunamiEvent, NewSetupType("TSUNAMIEVENT1D"))
	assert.Equal(t, "Shock Shock 1D", SETUP_ShockShock1d.Print())
	assert.Equal(t, "SetupType(99)", SetupType(99).Print())
	assert.Panics(t, func() { NewSetupType("") })
	assert.Panics(t, func() { NewSetupType("volcano") })
	assert.Len(t, SetupPrintNames, int(SETUP_CheckPoint)+1)
}

func TestNewSetup(t *testing.T) {
	s, err := NewSetup(SETUP_DamBreak1d, map[string]float64{"hL": 14, "location": 3}, Files{})
	require.NoError(t, err)
	assert.Equal(t, &DamBreak1d{HL: 14, HR: 5, Location: 3}, s)

	_, err = NewSetup(SETUP_TsunamiEvent, nil, Files{})
	assert.Error(t, err)
	s, err = NewSetup(SETUP_CheckPoint, nil, Files{Checkpoint: filepath.Join(t.TempDir(), "none.nc")})
	assert.Error(t, err)
	assert.Nil(t, s)
	_, err = NewSetup(SetupType(99), nil, Files{})
	assert.Error(t, err)
}

func TestDamBreaks(t *testing.T) {
	{
		s := &DamBreak1d{HL: 10, HR: 5, Location: 5}
		assert.Equal(t, 10., s.GetHeight(4.99, 0))
		assert.Equal(t, 5., s.GetHeight(5, 0))
		assert.Equal(t, 0., s.GetMomentumX(1, 0))
		assert.Equal(t, 0., s.GetBathymetry(1, 0))
	}
	{
		s := &DamBreak2d{HInside: 10, HOutside: 5, CenterX: 50, CenterY: 50, Radius: 10}
		assert.Equal(t, 10., s.GetHeight(50, 50))
		assert.Equal(t, 10., s.GetHeight(57, 57))
		assert.Equal(t, 5., s.GetHeight(58, 58))
		assert.Equal(t, 5., s.GetHeight(0, 0))
	}
	{
		shock := &RiemannProblem1d{H: 10, HU: 5, Location: 5, Shock: true}
		rare := &RiemannProblem1d{H: 10, HU: 5, Location: 5}
		assert.Equal(t, 5., shock.GetMomentumX(1, 0))
		assert.Equal(t, -5., shock.GetMomentumX(6, 0))
		assert.Equal(t, -5., rare.GetMomentumX(1, 0))
		assert.Equal(t, 5., rare.GetMomentumX(6, 0))
		assert.Equal(t, 10., rare.GetHeight(6, 0))
	}
}

func TestChannelFlow(t *testing.T) {
	sub := NewSubcriticalFlow1d()
	assert.Equal(t, -2., sub.GetBathymetry(5, 0))
	assert.InDelta(t, -1.8, sub.GetBathymetry(10, 0), 1.e-12)
	assert.InDelta(t, -1.85, sub.GetBathymetry(11, 0), 1.e-12)
	for _, x := range []float64{0.5, 9, 10, 11.5, 24} {
		// Flat water surface
		assert.InDelta(t, 0., sub.GetHeight(x, 0)+sub.GetBathymetry(x, 0), 1.e-12)
	}
	assert.Equal(t, 4.42, sub.GetMomentumX(3, 0))
	super := NewSupercriticalFlow1d()
	assert.InDelta(t, 0.13, super.GetHeight(10, 0), 1.e-12)
	assert.Equal(t, 0.33, super.GetHeight(20, 0))
	xMin, xMax, _, _ := super.Bounds()
	assert.Equal(t, 0., xMin)
	assert.Equal(t, 25., xMax)
}

func TestArtificialTsunami(t *testing.T) {
	s := &ArtificialTsunami2d{Depth: 100, Amplitude: 5, HalfWidth: 500, Extent: 5000}
	assert.Equal(t, 100., s.GetHeight(0, 0))
	assert.Equal(t, -100., s.GetBathymetry(600, 0))
	assert.Equal(t, -100., s.GetBathymetry(0, -501))
	// Peak of the sine at x = -250
	assert.InDelta(t, -95., s.GetBathymetry(-250, 0), 1.e-9)
	assert.InDelta(t, -105., s.GetBathymetry(250, 0), 1.e-9)
	assert.InDelta(t, -100.-5*0.75, s.GetBathymetry(250, 250), 1.e-9)
	xMin, xMax, yMin, yMax := s.Bounds()
	assert.Equal(t, [4]float64{-5000, 5000, -5000, 5000}, [4]float64{xMin, xMax, yMin, yMax})
}

func TestTsunamiEvent(t *testing.T) {
	var (
		dir   = t.TempDir()
		bathy = filepath.Join(dir, "bathy.nc")
		displ = filepath.Join(dir, "displ.nc")
	)
	require.NoError(t, netcdf.WriteGrid(bathy, "z", &netcdf.Grid{
		X: []float64{0, 100, 200, 300, 400},
		Y: []float64{0},
		Z: []float64{-1000, -50, -5, 3, 80},
	}))
	require.NoError(t, netcdf.WriteGrid(displ, "z", &netcdf.Grid{
		X: []float64{50, 100, 150},
		Y: []float64{0},
		Z: []float64{1, 2, 1},
	}))
	s, err := NewSetup(SETUP_TsunamiEvent, map[string]float64{}, Files{Bathymetry: bathy, Displacement: displ})
	require.NoError(t, err)
	te := s.(*TsunamiEvent)
	assert.Equal(t, DefaultDryDelta, te.Delta)
	// Deep water, outside the displacement
	assert.Equal(t, 1000., te.GetHeight(0, 0))
	assert.Equal(t, -1000., te.GetBathymetry(0, 0))
	// Displaced
	assert.Equal(t, 50., te.GetHeight(100, 0))
	assert.Equal(t, -48., te.GetBathymetry(100, 0))
	// Shallow water is deepened to delta
	assert.Equal(t, 20., te.GetHeight(200, 0))
	assert.Equal(t, -20., te.GetBathymetry(200, 0))
	// Low land is raised to delta
	assert.Equal(t, 0., te.GetHeight(300, 0))
	assert.Equal(t, 20., te.GetBathymetry(300, 0))
	assert.Equal(t, 80., te.GetBathymetry(400, 0))
	xMin, xMax, _, _ := te.Bounds()
	assert.Equal(t, 0., xMin)
	assert.Equal(t, 400., xMax)

	// Without displacement and a custom delta
	s, err = NewSetup(SETUP_TsunamiEvent, map[string]float64{"delta": 1}, Files{Bathymetry: bathy})
	require.NoError(t, err)
	assert.Equal(t, 5., s.GetHeight(200, 0))
	assert.Equal(t, -50., s.GetBathymetry(100, 0))
}

func TestCheckPointSetup(t *testing.T) {
	file := filepath.Join(t.TempDir(), "restart.nc")
	cp := netcdf.NewCheckpoint(2, 2)
	cp.DX, cp.DY, cp.OriginX, cp.OriginY, cp.Time = 10, 5, 100, 0, 42
	copy(cp.H, []float64{1, 2, 3, 4})
	copy(cp.HU, []float64{0.1, 0.2, 0.3, 0.4})
	copy(cp.HV, []float64{-1, -2, -3, -4})
	copy(cp.B, []float64{-1, -2, -3, -4})
	require.NoError(t, netcdf.WriteCheckpoint(file, cp))

	s, err := NewSetup(SETUP_CheckPoint, nil, Files{Checkpoint: file})
	require.NoError(t, err)
	restart := s.(*CheckPoint)
	assert.Equal(t, 42., restart.StartTime())
	assert.Equal(t, 1., s.GetHeight(105, 2.5))
	assert.Equal(t, 2., s.GetHeight(115, 2.5))
	assert.Equal(t, 0.3, s.GetMomentumX(105, 7.5))
	assert.Equal(t, -4., s.GetMomentumY(115, 7.5))
	assert.Equal(t, -4., s.GetBathymetry(1000, 1000)) // Clamped to the last cell
	xMin, xMax, yMin, yMax := restart.Bounds()
	assert.Equal(t, [4]float64{100, 120, 0, 10}, [4]float64{xMin, xMax, yMin, yMax})
	nx, ny := restart.Cells()
	assert.Equal(t, 2, nx)
	assert.Equal(t, 2, ny)
	var _ Restarted = restart
}
