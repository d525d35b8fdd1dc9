package simulator

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/WavePropagation"
	"github.com/notargets/goswe/netcdf"
	"github.com/notargets/goswe/setups"
	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/stations"
	"github.com/notargets/goswe/types"
	"github.com/notargets/goswe/utils"
)

type Simulator struct {
	ip               *InputParameters.InputParameters
	Patch            WavePropagation.WavePropagation
	Setup            setups.Setup
	NX, NY           int
	DX, DY           float64
	OriginX, OriginY float64
	Time             float64
	Steps            int
	Partitions       *utils.PartitionMap // Cell ranges for initialization
	Progress         bool                // Show a progress bar instead of the iteration table
	Quiet            bool                // No console output at all
	OutputDir        string              // Station files are written here
}

// Summary reports a finished or interrupted run
type Summary struct {
	Steps          int
	Time           float64
	Frames         int
	Mass0, Mass    float64
	MaxHeight      float64
	Elapsed        time.Duration // Time spent stepping the patch
	Interrupted    bool
	CheckpointFile string
}

// NewPatch builds the patch described by the input, ProcLimit sets the go routines of 2D sweeps
func NewPatch(ip *InputParameters.InputParameters, ProcLimit int) (wp WavePropagation.WavePropagation) {
	var (
		bcs = ip.Boundaries()
	)
	switch ip.Dimensions {
	case 2:
		wp2 := WavePropagation.NewWavePropagation2d(ip.NX, ip.NY, bcs)
		wp2.SetParallelDegree(ProcLimit)
		wp = wp2
	default:
		wp = WavePropagation.NewWavePropagation1d(ip.NX, solvers.NewSolverType(ip.Solver),
			[2]types.BCFLAG{bcs[types.Left], bcs[types.Right]})
	}
	return
}

// Build creates the setup and the patch from the input and returns a simulator ready to initialize
func Build(ip *InputParameters.InputParameters, ProcLimit int) (sim *Simulator, err error) {
	var (
		setup setups.Setup
	)
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	if setup, err = setups.NewSetup(setups.NewSetupType(ip.Setup), ip.SetupParameters, ip.SetupFiles()); err != nil {
		return nil, err
	}
	return NewSimulator(ip, NewPatch(ip, ProcLimit), setup, ProcLimit)
}

// NewSimulator lays the patch cells over the domain, a zero domain size takes the extent of a bounded setup
func NewSimulator(ip *InputParameters.InputParameters, patch WavePropagation.WavePropagation,
	setup setups.Setup, ProcLimit int) (sim *Simulator, err error) {
	var (
		sizeX, sizeY     = ip.SizeX, ip.SizeY
		originX, originY = ip.OriginX, ip.OriginY
	)
	if sizeX == 0 || (ip.Dimensions == 2 && sizeY == 0) {
		bd, ok := setup.(setups.Bounded)
		if !ok {
			return nil, fmt.Errorf("domain size is not set and setup %s has no extent", ip.Setup)
		}
		xMin, xMax, yMin, yMax := bd.Bounds()
		if sizeX == 0 {
			sizeX, originX = xMax-xMin, xMin
		}
		if sizeY == 0 {
			sizeY, originY = yMax-yMin, yMin
		}
	}
	if ip.Dimensions == 1 || sizeY == 0 {
		sizeY = 1
	}
	nx, ny := patch.GetNCells()
	sim = &Simulator{
		ip:      ip,
		Patch:   patch,
		Setup:   setup,
		NX:      nx,
		NY:      ny,
		DX:      sizeX / float64(nx),
		DY:      sizeY / float64(ny),
		OriginX: originX,
		OriginY: originY,
	}
	if rs, ok := setup.(setups.Restarted); ok {
		sim.Time = rs.StartTime()
	}
	sim.Partitions = utils.NewPartitionMap(utils.GetParallelDegree(ProcLimit, nx*ny), nx*ny)
	return
}

// CellCenter returns the physical position of cell (ix, iy)
func (sim *Simulator) CellCenter(ix, iy int) (x, y float64) {
	x = sim.OriginX + (float64(ix)+0.5)*sim.DX
	y = sim.OriginY + (float64(iy)+0.5)*sim.DY
	return
}

// Initialize queries the setup once per cell, cell ranges are filled in parallel
func (sim *Simulator) Initialize() {
	var (
		wp = sim.Patch
		s  = sim.Setup
	)
	sim.Partitions.Run(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			ix, iy := k%sim.NX, k/sim.NX
			x, y := sim.CellCenter(ix, iy)
			wp.SetHeight(ix, iy, s.GetHeight(x, y))
			wp.SetMomentumX(ix, iy, s.GetMomentumX(x, y))
			wp.SetMomentumY(ix, iy, s.GetMomentumY(x, y))
			wp.SetBathymetry(ix, iy, s.GetBathymetry(x, y))
		}
	})
	// A restart already carries corrected heights
	if _, ok := sim.Setup.(setups.Restarted); !ok {
		wp.AdjustWaterHeight()
	}
}

// rows returns the interior part of each row of a patch field
func (sim *Simulator) rows(A []float64, f func(row []float64)) {
	stride := sim.Patch.GetStride()
	for j := 0; j < sim.NY; j++ {
		f(A[j*stride : j*stride+sim.NX])
	}
}

// Mass is the total water volume of the patch
func (sim *Simulator) Mass() (mass float64) {
	sim.rows(sim.Patch.GetHeight(), func(row []float64) {
		mass += floats.Sum(row)
	})
	mass *= sim.DX * sim.DY
	return
}

func (sim *Simulator) MaxHeight() (hMax float64) {
	sim.rows(sim.Patch.GetHeight(), func(row []float64) {
		hMax = math.Max(hMax, floats.Max(row))
	})
	return
}

/*
ComputeTimeStep finds the largest stable step, dt = CFL * min(dx, dy) / max(|u| + sqrt(g*h)) over all wet
cells. The step is shortened so that the simulation lands exactly on tLimit.
*/
func (sim *Simulator) ComputeTimeStep(tLimit float64) (dt float64) {
	var (
		h, hu, hv = sim.Patch.GetHeight(), sim.Patch.GetMomentumX(), sim.Patch.GetMomentumY()
		stride    = sim.Patch.GetStride()
		speeds    = make([]float64, 0, sim.NY)
		dMin      = sim.DX
	)
	if sim.NY > 1 {
		dMin = math.Min(sim.DX, sim.DY)
	}
	rowSpeed := make([]float64, sim.NX)
	for j := 0; j < sim.NY; j++ {
		for i := 0; i < sim.NX; i++ {
			ind := i + j*stride
			rowSpeed[i] = 0
			if h[ind] < WavePropagation.DryTolerance {
				continue
			}
			c := math.Sqrt(solvers.Gravity * h[ind])
			s := math.Abs(hu[ind]/h[ind]) + c
			if hv != nil {
				s = math.Max(s, math.Abs(hv[ind]/h[ind])+c)
			}
			rowSpeed[i] = s
		}
		speeds = append(speeds, floats.Max(rowSpeed))
	}
	maxSpeed := floats.Max(speeds)
	remaining := tLimit - sim.Time
	if maxSpeed == 0 {
		return remaining
	}
	dt = sim.ip.CFL * dMin / maxSpeed
	if dt > remaining {
		dt = remaining
	}
	return
}

// Step advances the patch by dt
func (sim *Simulator) Step(dt float64) {
	sim.Patch.SetGhostOutflow()
	sim.Patch.TimeStep(dt/sim.DX, dt/sim.DY)
	sim.Time += dt
	sim.Steps++
}

func (sim *Simulator) Checkpoint() (cp *netcdf.Checkpoint) {
	wp := sim.Patch
	cp = netcdf.NewCheckpoint(sim.NX, sim.NY)
	cp.Gather(wp.GetHeight(), wp.GetMomentumX(), wp.GetMomentumY(), wp.GetBathymetry(), wp.GetStride())
	cp.Time = sim.Time
	cp.DX, cp.DY = sim.DX, sim.DY
	cp.OriginX, cp.OriginY = sim.OriginX, sim.OriginY
	return
}

func (sim *Simulator) isFinite() bool {
	ok := true
	sim.rows(sim.Patch.GetHeight(), func(row []float64) {
		ok = ok && !utils.IsNan(row)
	})
	return ok
}

/*
Run steps the patch until the end time. Frames go to the solution file at EndTime/OutputFrames intervals,
stations are captured every StationInterval of simulated time and a checkpoint is written every
CheckpointInterval seconds of wall clock time. Cancelling ctx stops the run between two steps, a final
checkpoint is written when a checkpoint file is configured.
*/
func (sim *Simulator) Run(ctx context.Context) (sum Summary, err error) {
	var (
		ip             = sim.ip
		frameDt        = ip.EndTime / float64(max(ip.OutputFrames, 1))
		nextFrame      = (math.Floor(sim.Time/frameDt+1.e-9) + 1) * frameDt
		eps            = 1.e-12 * ip.EndTime
		writer         *netcdf.SolutionWriter
		recorder       *stations.Recorder
		progress       *progressBar
		lastCheckpoint = time.Now()
		start          time.Time
	)
	sum.Mass0 = sim.Mass()
	if writer, err = sim.openWriter(); err != nil {
		return
	}
	if writer != nil {
		defer writer.Close()
	}
	if recorder, err = sim.openRecorder(); err != nil {
		return
	}
	if recorder != nil {
		defer recorder.Close()
		if err = recorder.Capture(sim.Time, sim.Patch); err != nil {
			return
		}
	}
	if sim.Progress && !sim.Quiet {
		progress = newProgressBar(sim.Time, ip.EndTime)
		defer progress.Stop()
	} else if !sim.Quiet {
		sim.PrintInitialization()
	}

	for sim.Time < ip.EndTime-eps && (ip.MaxIterations == 0 || sim.Steps < ip.MaxIterations) {
		select {
		case <-ctx.Done():
			sum.Interrupted = true
			err = sim.writeCheckpoint(&sum)
			sim.summarize(&sum, writer)
			if err == nil {
				err = ctx.Err()
			}
			return
		default:
		}
		dt := sim.ComputeTimeStep(math.Min(nextFrame, ip.EndTime))
		start = time.Now()
		sim.Step(dt)
		sum.Elapsed += time.Since(start)

		if recorder != nil {
			if err = recorder.Capture(sim.Time, sim.Patch); err != nil {
				return
			}
		}
		if sim.Time >= nextFrame-eps || sim.Time >= ip.EndTime-eps {
			nextFrame += frameDt
			if !sim.isFinite() {
				err = fmt.Errorf("solution is not finite at time %v after %d steps", sim.Time, sim.Steps)
				sim.summarize(&sum, writer)
				return
			}
			if writer != nil {
				if err = sim.writeFrame(writer); err != nil {
					return
				}
			}
			if progress == nil && !sim.Quiet {
				sim.PrintUpdate(dt)
			}
		}
		if progress != nil {
			progress.Set(sim.Time)
		}
		if ip.CheckpointInterval > 0 && time.Since(lastCheckpoint).Seconds() > ip.CheckpointInterval {
			if err = sim.writeCheckpoint(&sum); err != nil {
				return
			}
			lastCheckpoint = time.Now()
		}
	}
	if err = sim.writeCheckpoint(&sum); err != nil {
		return
	}
	sim.summarize(&sum, writer)
	if !sim.Quiet {
		if progress != nil {
			progress.Stop()
		}
		sim.PrintFinal(sum)
	}
	return
}

func (sim *Simulator) summarize(sum *Summary, writer *netcdf.SolutionWriter) {
	sum.Steps = sim.Steps
	sum.Time = sim.Time
	sum.Mass = sim.Mass()
	sum.MaxHeight = sim.MaxHeight()
	if writer != nil {
		sum.Frames = writer.NumFrames()
	}
}

func (sim *Simulator) openWriter() (writer *netcdf.SolutionWriter, err error) {
	if len(sim.ip.OutputFile) == 0 {
		return
	}
	wp := sim.Patch
	if writer, err = netcdf.NewSolutionWriter(sim.ip.OutputFile, sim.NX, sim.NY, sim.DX, sim.DY,
		sim.OriginX, sim.OriginY, sim.ip.Coarsen); err != nil {
		return nil, err
	}
	if err = writer.WriteBathymetry(wp.GetBathymetry(), wp.GetStride()); err != nil {
		writer.Close()
		return nil, err
	}
	if err = sim.writeFrame(writer); err != nil {
		writer.Close()
		return nil, err
	}
	return
}

func (sim *Simulator) writeFrame(writer *netcdf.SolutionWriter) error {
	wp := sim.Patch
	return writer.WriteTimeStep(wp.GetHeight(), wp.GetMomentumX(), wp.GetMomentumY(), wp.GetStride(), sim.Time)
}

func (sim *Simulator) openRecorder() (recorder *stations.Recorder, err error) {
	var (
		ip  = sim.ip
		sts []stations.Station
	)
	if len(ip.StationFile) == 0 {
		return
	}
	if sts, err = stations.ReadStations(ip.StationFile); err != nil {
		return
	}
	domain := stations.Domain{NX: sim.NX, NY: sim.NY, DX: sim.DX, DY: sim.DY, OriginX: sim.OriginX, OriginY: sim.OriginY}
	return stations.NewRecorder(sts, sim.OutputDir, ip.StationInterval, domain, ip.Projection)
}

func (sim *Simulator) writeCheckpoint(sum *Summary) (err error) {
	if len(sim.ip.CheckpointFile) == 0 {
		return
	}
	if err = netcdf.WriteCheckpoint(sim.ip.CheckpointFile, sim.Checkpoint()); err != nil {
		return
	}
	sum.CheckpointFile = sim.ip.CheckpointFile
	return
}
