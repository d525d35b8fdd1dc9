package setups

import (
	"fmt"
	"sort"
	"strings"
)

// Setup provides the initial state as pure functions of the physical position
type Setup interface {
	GetHeight(x, y float64) float64
	GetMomentumX(x, y float64) float64
	GetMomentumY(x, y float64) float64
	GetBathymetry(x, y float64) float64
}

// Bounded setups know the extent of the domain they describe
type Bounded interface {
	Bounds() (xMin, xMax, yMin, yMax float64)
}

// Restarted setups resume a simulation at a time other than zero
type Restarted interface {
	StartTime() float64
}

type SetupType uint

const (
	SETUP_DamBreak1d SetupType = iota
	SETUP_DamBreak2d
	SETUP_ShockShock1d
	SETUP_RareRare1d
	SETUP_Subcritical1d
	SETUP_Supercritical1d
	SETUP_ArtificialTsunami2d
	SETUP_TsunamiEvent
	SETUP_CheckPoint
)

var (
	SetupNames = map[string]SetupType{
		"dambreak1d":          SETUP_DamBreak1d,
		"dambreak":            SETUP_DamBreak1d,
		"dambreak2d":          SETUP_DamBreak2d,
		"shockshock1d":        SETUP_ShockShock1d,
		"shockshock":          SETUP_ShockShock1d,
		"rarerare1d":          SETUP_RareRare1d,
		"rarerare":            SETUP_RareRare1d,
		"subcritical1d":       SETUP_Subcritical1d,
		"subcritical":         SETUP_Subcritical1d,
		"supercritical1d":     SETUP_Supercritical1d,
		"supercritical":       SETUP_Supercritical1d,
		"artificialtsunami2d": SETUP_ArtificialTsunami2d,
		"artificialtsunami":   SETUP_ArtificialTsunami2d,
		"tsunamievent":        SETUP_TsunamiEvent,
		"tsunamievent1d":      SETUP_TsunamiEvent,
		"tsunamievent2d":      SETUP_TsunamiEvent,
		"checkpoint":          SETUP_CheckPoint,
	}
	SetupPrintNames = []string{"Dam Break 1D", "Circular Dam Break 2D", "Shock Shock 1D", "Rare Rare 1D",
		"Subcritical Flow 1D", "Supercritical Flow 1D", "Artificial Tsunami 2D", "Tsunami Event", "Checkpoint Restart"}
)

func (st SetupType) Print() (txt string) {
	if int(st) < len(SetupPrintNames) {
		txt = SetupPrintNames[st]
		return
	}
	txt = fmt.Sprintf("SetupType(%d)", st)
	return
}

func NewSetupType(label string) (st SetupType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty setup type, must be one of %v", setupLabels())
		panic(err)
	}
	label = strings.ToLower(label)
	if st, ok = SetupNames[label]; !ok {
		err = fmt.Errorf("unable to use setup named %s, must be one of %v", label, setupLabels())
		panic(err)
	}
	return
}

func setupLabels() (labels []string) {
	for label := range SetupNames {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return
}

// Files names the inputs of the file based setups
type Files struct {
	Bathymetry      string
	BathymetryVar   string
	Displacement    string
	DisplacementVar string
	Checkpoint      string
}

// param returns params[name], or def when the parameter is not given
func param(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}

// NewSetup builds a setup from its type and the named parameters of the input file
func NewSetup(st SetupType, params map[string]float64, files Files) (s Setup, err error) {
	switch st {
	case SETUP_DamBreak1d:
		s = &DamBreak1d{
			HL:       param(params, "hL", 10),
			HR:       param(params, "hR", 5),
			Location: param(params, "location", 5),
		}
	case SETUP_DamBreak2d:
		s = &DamBreak2d{
			HInside:  param(params, "hInside", 10),
			HOutside: param(params, "hOutside", 5),
			CenterX:  param(params, "centerX", 50),
			CenterY:  param(params, "centerY", 50),
			Radius:   param(params, "radius", 10),
		}
	case SETUP_ShockShock1d, SETUP_RareRare1d:
		s = &RiemannProblem1d{
			H:        param(params, "h", 10),
			HU:       param(params, "hu", 5),
			Location: param(params, "location", 5),
			Shock:    st == SETUP_ShockShock1d,
		}
	case SETUP_Subcritical1d:
		s = NewSubcriticalFlow1d()
	case SETUP_Supercritical1d:
		s = NewSupercriticalFlow1d()
	case SETUP_ArtificialTsunami2d:
		s = &ArtificialTsunami2d{
			Depth:     param(params, "depth", 100),
			Amplitude: param(params, "amplitude", 5),
			HalfWidth: param(params, "halfWidth", 500),
			Extent:    param(params, "extent", 5000),
		}
	case SETUP_TsunamiEvent:
		var te *TsunamiEvent
		if te, err = NewTsunamiEvent(files, param(params, "delta", DefaultDryDelta)); err != nil {
			return nil, err
		}
		s = te
	case SETUP_CheckPoint:
		var cp *CheckPoint
		if cp, err = NewCheckPoint(files.Checkpoint); err != nil {
			return nil, err
		}
		s = cp
	default:
		err = fmt.Errorf("setups: unknown setup type %d", st)
	}
	return
}
