package InputParameters

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/goswe/setups"
	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/stations"
	"github.com/notargets/goswe/types"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title              string              `json:"Title"`
	Dimensions         int                 `json:"Dimensions"`
	Setup              string              `json:"Setup"`
	SetupParameters    map[string]float64  `json:"SetupParameters"`
	Solver             string              `json:"Solver"`
	NX                 int                 `json:"NX"`
	NY                 int                 `json:"NY"`
	SizeX              float64             `json:"SizeX"` // Zero takes the extent of the setup
	SizeY              float64             `json:"SizeY"`
	OriginX            float64             `json:"OriginX"`
	OriginY            float64             `json:"OriginY"`
	EndTime            float64             `json:"EndTime"`
	CFL                float64             `json:"CFL"`
	BCs                map[string]string   `json:"BCs"` // Side name to boundary condition
	OutputFile         string              `json:"OutputFile"`
	OutputFrames       int                 `json:"OutputFrames"`
	Coarsen            int                 `json:"Coarsen"`
	CheckpointFile     string              `json:"CheckpointFile"`
	CheckpointInterval float64             `json:"CheckpointInterval"` // Wall clock seconds, zero disables
	StationFile        string              `json:"StationFile"`
	StationInterval    float64             `json:"StationInterval"` // Simulated seconds
	Projection         stations.Projection `json:"Projection"`
	BathymetryFile     string              `json:"BathymetryFile"`
	BathymetryVar      string              `json:"BathymetryVar"`
	DisplacementFile   string              `json:"DisplacementFile"`
	DisplacementVar    string              `json:"DisplacementVar"`
	RestartFile        string              `json:"RestartFile"`
	MaxIterations      int                 `json:"MaxIterations"`
}

func NewInputParameters() (ip *InputParameters) {
	ip = &InputParameters{
		Title:        "Shallow Water",
		Dimensions:   1,
		Setup:        "dambreak1d",
		Solver:       "fwave",
		NX:           100,
		NY:           1,
		SizeX:        10,
		SizeY:        1,
		EndTime:      1,
		CFL:          0.5,
		OutputFrames: 20,
		Coarsen:      1,
	}
	return
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ReadFile parses a YAML input file on top of the defaults
func ReadFile(fileName string) (ip *InputParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	ip = NewInputParameters()
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing input file %s: %w", fileName, err)
	}
	return
}

func (ip *InputParameters) Validate() (err error) {
	switch {
	case ip.Dimensions != 1 && ip.Dimensions != 2:
		err = fmt.Errorf("dimensions must be 1 or 2, have %d", ip.Dimensions)
	case ip.NX < 1 || (ip.Dimensions == 2 && ip.NY < 1):
		err = fmt.Errorf("need at least one cell per direction, have NX = %d, NY = %d", ip.NX, ip.NY)
	case ip.SizeX < 0 || ip.SizeY < 0:
		err = fmt.Errorf("domain size must not be negative, have %v x %v", ip.SizeX, ip.SizeY)
	case ip.EndTime <= 0:
		err = fmt.Errorf("end time must be positive, have %v", ip.EndTime)
	case ip.CFL <= 0 || ip.CFL > 1:
		err = fmt.Errorf("CFL must be in (0, 1], have %v", ip.CFL)
	case ip.Coarsen < 1:
		err = fmt.Errorf("coarsening must be at least 1, have %d", ip.Coarsen)
	case ip.Dimensions == 2 && ip.Solver != "" && solvers.SolverNames[strings.ToLower(ip.Solver)] != solvers.SOLVER_Fwave:
		err = fmt.Errorf("2D patches only support the f-wave solver, have %s", ip.Solver)
	}
	if err != nil {
		return
	}
	if _, ok := setups.SetupNames[strings.ToLower(ip.Setup)]; !ok {
		return fmt.Errorf("unknown setup %q", ip.Setup)
	}
	if _, ok := solvers.SolverNames[strings.ToLower(ip.Solver)]; !ok && ip.Solver != "" {
		return fmt.Errorf("unknown solver %q", ip.Solver)
	}
	for side, bc := range ip.BCs {
		if _, ok := types.SideNameMap[strings.ToLower(side)]; !ok {
			return fmt.Errorf("unknown boundary side %q", side)
		}
		if _, ok := types.BCNameMap[strings.ToLower(bc)]; !ok {
			return fmt.Errorf("unknown boundary condition %q on side %s", bc, side)
		}
	}
	return
}

// Boundaries returns the boundary condition per side, sides not named are outflow
func (ip *InputParameters) Boundaries() (bcs [4]types.BCFLAG) {
	for side, bc := range ip.BCs {
		bcs[types.SideNameMap[strings.ToLower(side)]] = types.NewBCFLAG(bc)
	}
	return
}

func (ip *InputParameters) SetupFiles() setups.Files {
	return setups.Files{
		Bathymetry:      ip.BathymetryFile,
		BathymetryVar:   ip.BathymetryVar,
		Displacement:    ip.DisplacementFile,
		DisplacementVar: ip.DisplacementVar,
		Checkpoint:      ip.RestartFile,
	}
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%d\t\t\t= Dimensions\n", ip.Dimensions)
	fmt.Printf("[%s]\t\t= Setup\n", ip.Setup)
	fmt.Printf("[%s]\t\t\t= Solver\n", ip.Solver)
	fmt.Printf("%d x %d\t\t= Cells\n", ip.NX, ip.NY)
	fmt.Printf("%8.3f x %8.3f\t= Domain Size, origin (%8.3f, %8.3f)\n", ip.SizeX, ip.SizeY, ip.OriginX, ip.OriginY)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= EndTime\n", ip.EndTime)
	if len(ip.OutputFile) != 0 {
		fmt.Printf("[%s]\t= Output, %d frames, coarsened by %d\n", ip.OutputFile, ip.OutputFrames, ip.Coarsen)
	}
	if len(ip.CheckpointFile) != 0 {
		fmt.Printf("[%s]\t= Checkpoint every %v seconds\n", ip.CheckpointFile, ip.CheckpointInterval)
	}
	keys := make([]string, 0, len(ip.SetupParameters))
	for k := range ip.SetupParameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("SetupParameters[%s] = %v\n", key, ip.SetupParameters[key])
	}
	keys = keys[:0]
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
