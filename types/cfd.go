package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_Outflow BCFLAG = iota // zero gradient, ghost cells copy the interior neighbor
	BC_Wall                  // full reflection at the physical boundary
)

var (
	BCNameMap = map[string]BCFLAG{
		"outflow": BC_Outflow,
		"out":     BC_Outflow,
		"open":    BC_Outflow,
		"wall":    BC_Wall,
		"reflect": BC_Wall,
	}
	BCPrintNames = []string{"Outflow", "Wall"}
)

func (bc BCFLAG) String() string {
	if int(bc) < len(BCPrintNames) {
		return BCPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

func NewBCFLAG(label string) (bc BCFLAG) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if bc, ok = BCNameMap[label]; !ok {
		err = fmt.Errorf("unable to use boundary condition named %s", label)
		panic(err)
	}
	return
}

// Side indexes the four boundaries of a patch, 1D patches use only Left and Right
type Side uint8

const (
	Left Side = iota
	Right
	Bottom
	Top
)

var (
	SideNameMap = map[string]Side{
		"left":   Left,
		"right":  Right,
		"bottom": Bottom,
		"top":    Top,
	}
	SidePrintNames = []string{"Left", "Right", "Bottom", "Top"}
)

func (s Side) String() string {
	if int(s) < len(SidePrintNames) {
		return SidePrintNames[s]
	}
	return fmt.Sprintf("Side(%d)", s)
}
