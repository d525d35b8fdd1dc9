package setups

import (
	"math"
)

// DamBreak1d holds water at height HL left of Location and HR right of it, at rest on a flat bottom
type DamBreak1d struct {
	HL, HR   float64
	Location float64
}

func (s *DamBreak1d) GetHeight(x, _ float64) float64 {
	if x < s.Location {
		return s.HL
	}
	return s.HR
}

func (s *DamBreak1d) GetMomentumX(_, _ float64) float64 { return 0 }

func (s *DamBreak1d) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *DamBreak1d) GetBathymetry(_, _ float64) float64 { return 0 }

// DamBreak2d is a circular dam of radius Radius around (CenterX, CenterY)
type DamBreak2d struct {
	HInside, HOutside float64
	CenterX, CenterY  float64
	Radius            float64
}

func (s *DamBreak2d) GetHeight(x, y float64) float64 {
	dx, dy := x-s.CenterX, y-s.CenterY
	if dx*dx+dy*dy < s.Radius*s.Radius {
		return s.HInside
	}
	return s.HOutside
}

func (s *DamBreak2d) GetMomentumX(_, _ float64) float64 { return 0 }

func (s *DamBreak2d) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *DamBreak2d) GetBathymetry(_, _ float64) float64 { return 0 }

/*
RiemannProblem1d has the height H on both sides of Location and opposite momenta. With Shock set the two
streams run into each other (HU on the left, -HU on the right), otherwise they run apart.
*/
type RiemannProblem1d struct {
	H, HU    float64
	Location float64
	Shock    bool
}

func (s *RiemannProblem1d) GetHeight(_, _ float64) float64 { return s.H }

func (s *RiemannProblem1d) GetMomentumX(x, _ float64) float64 {
	hu := math.Abs(s.HU)
	if !s.Shock {
		hu = -hu
	}
	if x < s.Location {
		return hu
	}
	return -hu
}

func (s *RiemannProblem1d) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *RiemannProblem1d) GetBathymetry(_, _ float64) float64 { return 0 }

/*
ChannelFlow1d is steady flow of constant discharge HU over a parabolic bump between x = 8 and x = 12 in a
channel on [0, 25]. The free surface starts flat at zero.

	b(x) = BumpTop - 0.05*(x-10)^2   for 8 < x < 12
	b(x) = Floor                      otherwise
*/
type ChannelFlow1d struct {
	HU       float64
	BumpTop  float64
	Floor    float64
	Length   float64
	BumpFrom float64
	BumpTo   float64
}

func NewSubcriticalFlow1d() *ChannelFlow1d {
	return &ChannelFlow1d{HU: 4.42, BumpTop: -1.8, Floor: -2, Length: 25, BumpFrom: 8, BumpTo: 12}
}

func NewSupercriticalFlow1d() *ChannelFlow1d {
	return &ChannelFlow1d{HU: 0.18, BumpTop: -0.13, Floor: -0.33, Length: 25, BumpFrom: 8, BumpTo: 12}
}

func (s *ChannelFlow1d) GetBathymetry(x, _ float64) float64 {
	if x > s.BumpFrom && x < s.BumpTo {
		return s.BumpTop - 0.05*(x-10)*(x-10)
	}
	return s.Floor
}

func (s *ChannelFlow1d) GetHeight(x, y float64) float64 { return -s.GetBathymetry(x, y) }

func (s *ChannelFlow1d) GetMomentumX(_, _ float64) float64 { return s.HU }

func (s *ChannelFlow1d) GetMomentumY(_, _ float64) float64 { return 0 }

func (s *ChannelFlow1d) Bounds() (xMin, xMax, yMin, yMax float64) {
	return 0, s.Length, 0, 1
}
