package simulator

import (
	"fmt"
	"math"
	"sync"

	"github.com/gosuri/uiprogress"

	"github.com/notargets/goswe/utils"
)

const progressTicks = 1000

// progressBar shows the fraction of simulated time done
type progressBar struct {
	bar          *uiprogress.Bar
	tStart, tEnd float64
	once         sync.Once
}

func newProgressBar(tStart, tEnd float64) (pb *progressBar) {
	uiprogress.Start()
	pb = &progressBar{
		bar:    uiprogress.AddBar(progressTicks).AppendCompleted().PrependElapsed(),
		tStart: tStart,
		tEnd:   tEnd,
	}
	pb.bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("t = %10.4f", pb.tStart+float64(b.Current())/progressTicks*(pb.tEnd-pb.tStart))
	})
	return
}

func (pb *progressBar) Set(t float64) {
	n := int(math.Round(progressTicks * (t - pb.tStart) / (pb.tEnd - pb.tStart)))
	// Bar.Set only fails above Total, n is clamped to [0, progressTicks]
	_ = pb.bar.Set(min(max(n, 0), progressTicks))
}

func (pb *progressBar) Stop() {
	pb.once.Do(uiprogress.Stop)
}

func (sim *Simulator) PrintInitialization() {
	fmt.Printf("\"%s\" [%s], %d x %d cells, dx = %8.5f, dy = %8.5f\n", sim.ip.Title, sim.ip.Setup, sim.NX, sim.NY, sim.DX, sim.DY)
	fmt.Printf("    iter    time      dt          mass      maxH\n")
}

func (sim *Simulator) PrintUpdate(dt float64) {
	fmt.Printf("%8d%8.3f%8.5f%14.6g%10.4f\n", sim.Steps, sim.Time, dt, sim.Mass(), sim.MaxHeight())
}

func (sim *Simulator) PrintFinal(sum Summary) {
	var (
		cells = float64(sim.NX * sim.NY)
		rate  float64
	)
	if sum.Steps > 0 {
		rate = float64(sum.Elapsed.Microseconds()) / (cells * float64(sum.Steps))
	}
	fmt.Printf("\nFinal time = %8.5f after %d iterations, %d frames written\n", sum.Time, sum.Steps, sum.Frames)
	if sum.Mass0 != 0 {
		fmt.Printf("Mass = %14.8g, relative change = %10.3e\n", sum.Mass, (sum.Mass-sum.Mass0)/sum.Mass0)
	}
	fmt.Printf("Rate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, sum.Steps)
	fmt.Println(utils.GetMemUsage())
}
