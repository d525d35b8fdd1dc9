package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/dam_break"
	"github.com/notargets/goswe/simulator"
)

var (
	csvFile string
	outFile string
	CFL     = 0.5
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study to report")
	outFilePtr := flag.String("run", outFile, "run a dam break convergence study for both solvers and write it to this file")
	CFLptr := flag.Float64("CFL", CFL, "CFL of the study runs")
	flag.Parse()
	csvFile, outFile, CFL = *csvFilePtr, *outFilePtr, *CFLptr
	if len(csvFile) == 0 && len(outFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	var (
		studies = make(map[string]*ConvergenceStudy)
		err     error
	)
	if len(outFile) != 0 {
		for _, solver := range []string{"fwave", "roe"} {
			cs, err := RunStudy(solver, CFL, []int{50, 100, 200, 400, 800})
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			studies[cs.Key()] = cs
		}
		if err = writeCSV(outFile, studies); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		fmt.Printf("Input file: %v\n", csvFile)
		if studies, err = readCSV(csvFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
	keys := make([]string, 0, len(studies))
	for k := range studies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		studies[key].Print()
	}
}

type ConvergenceStudy struct {
	title       string
	solver      string
	CFL         float64
	numCells    []int
	hL1, huL1   []float64
	hMax, huMax []float64
}

func NewConvergenceStudy(title, solver string, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		solver: solver,
		CFL:    CFL,
	}
}

func (cs *ConvergenceStudy) Key() string { return cs.title + cs.solver }

func (cs *ConvergenceStudy) Add(numCells int, hL1, huL1, hMax, huMax float64) {
	cs.numCells = append(cs.numCells, numCells)
	cs.hL1 = append(cs.hL1, hL1)
	cs.huL1 = append(cs.huL1, huL1)
	cs.hMax = append(cs.hMax, hMax)
	cs.huMax = append(cs.huMax, huMax)
}

// Orders returns the observed L1 convergence order between each resolution and the previous one
func (cs *ConvergenceStudy) Orders() (hOrder, huOrder []float64) {
	order := func(e []float64, i int) float64 {
		return math.Log(e[i-1]/e[i]) / math.Log(float64(cs.numCells[i])/float64(cs.numCells[i-1]))
	}
	for i := 1; i < len(cs.numCells); i++ {
		hOrder = append(hOrder, order(cs.hL1, i))
		huOrder = append(huOrder, order(cs.huL1, i))
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	hOrder, huOrder := cs.Orders()
	fmt.Printf("Title = %s, Solver = %s, CFL = %5.2f\n", cs.title, cs.solver, cs.CFL)
	fmt.Printf("   cells        h L1       hu L1       h max      hu max  order h  order hu\n")
	for i := range cs.numCells {
		fmt.Printf("%8d%12.4e%12.4e%12.4e%12.4e", cs.numCells[i], cs.hL1[i], cs.huL1[i], cs.hMax[i], cs.huMax[i])
		if i > 0 {
			fmt.Printf("%9.3f%10.3f", hOrder[i-1], huOrder[i-1])
		}
		fmt.Printf("\n")
	}
}

/*
RunStudy solves the dam break hL = 10, hR = 5 on [0, 10] up to t = 0.2, before any wave leaves the domain,
at every resolution and records the errors against the exact solution.
*/
func RunStudy(solver string, CFL float64, resolutions []int) (cs *ConvergenceStudy, err error) {
	var (
		exact = dam_break.NewDamBreak(10, 5, 0, 0, 5)
	)
	cs = NewConvergenceStudy("DamBreak1d", solver, CFL)
	for _, n := range resolutions {
		var (
			sim *simulator.Simulator
			sum simulator.Summary
		)
		ip := InputParameters.NewInputParameters()
		ip.Solver, ip.CFL, ip.NX, ip.SizeX, ip.EndTime, ip.OutputFrames = solver, CFL, n, 10, 0.2, 1
		ip.SetupParameters = map[string]float64{"hL": 10, "hR": 5, "location": 5}
		if sim, err = simulator.Build(ip, 1); err != nil {
			return nil, err
		}
		sim.Quiet = true
		sim.Initialize()
		if sum, err = sim.Run(context.Background()); err != nil {
			return nil, err
		}
		var hL1, huL1, hMax, huMax float64
		h, hu := sim.Patch.GetHeight(), sim.Patch.GetMomentumX()
		for i := 0; i < n; i++ {
			x, _ := sim.CellCenter(i, 0)
			hE, huE := exact.Sample(x, sum.Time)
			dh, dhu := math.Abs(h[i]-hE), math.Abs(hu[i]-huE)
			hL1 += dh * sim.DX
			huL1 += dhu * sim.DX
			hMax = math.Max(hMax, dh)
			huMax = math.Max(huMax, dhu)
		}
		cs.Add(n, hL1, huL1, hMax, huMax)
	}
	return
}

func writeCSV(csvFile string, studies map[string]*ConvergenceStudy) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	if err = w.Write([]string{"title", "cells", "solver", "CFL", "hL1", "huL1", "hMax", "huMax"}); err != nil {
		return
	}
	for _, cs := range studies {
		for i := range cs.numCells {
			rec := []string{cs.title, strconv.Itoa(cs.numCells[i]), cs.solver, format(cs.CFL),
				format(cs.hL1[i]), format(cs.huL1[i]), format(cs.hMax[i]), format(cs.huMax[i])}
			if err = w.Write(rec); err != nil {
				return
			}
		}
	}
	w.Flush()
	return w.Error()
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records [][]string
		f       *os.File
		ok      bool
		cs      *ConvergenceStudy
		n       int
		vals    [5]float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		return nil, err
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) != 8 {
			return nil, fmt.Errorf("line %d: expected 8 fields, have %d", i+1, len(rec))
		}
		title, ntxt, solver := rec[0], rec[1], rec[2]
		if n, err = strconv.Atoi(ntxt); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(rec[3+j], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if cs, ok = studies[title+solver]; !ok {
			cs = NewConvergenceStudy(title, solver, vals[0])
			studies[cs.Key()] = cs
		}
		cs.Add(n, vals[1], vals[2], vals[3], vals[4])
	}
	return
}
