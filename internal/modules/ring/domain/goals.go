package domain

import (
	gradedomain "ascent/internal/modules/grade/domain"
	ledgerdomain "ascent/internal/modules/ledger/domain"
)

// Goals are daily send targets per discipline.
type Goals struct {
	Boulder int
	Rope    int
}

// For returns the goal of one discipline, or the combined goal for nil.
func (g Goals) For(discipline *ledgerdomain.Discipline) int {
	if discipline == nil {
		return g.Boulder + g.Rope
	}
	switch *discipline {
	case ledgerdomain.Boulder:
		return g.Boulder
	case ledgerdomain.Rope:
		return g.Rope
	default:
		return 0
	}
}

// ProgressColor is the colour of a discipline's goal ring.
func ProgressColor(discipline *ledgerdomain.Discipline) gradedomain.Color {
	switch {
	case discipline == nil:
		return CombinedColor
	case *discipline == ledgerdomain.Rope:
		return RopeColor
	default:
		return BoulderColor
	}
}
