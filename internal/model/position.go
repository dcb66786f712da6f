package model

import "time"

// Direction of a held position.
type Direction string

const (
	DirFlat  Direction = "FLAT"
	DirLong  Direction = "LONG"
	DirShort Direction = "SHORT"
)

// Position tracks the currently held position. The zero value is flat
// apart from Direction, so always construct with NewFlatPosition.
type Position struct {
	Direction  Direction
	EntryPrice float64
	OpenedAt   time.Time
}

// NewFlatPosition returns an empty (flat) position.
func NewFlatPosition() Position {
	return Position{Direction: DirFlat}
}

// IsOpen reports whether a position is currently held.
func (p Position) IsOpen() bool {
	return p.Direction == DirLong || p.Direction == DirShort
}

// PnLPercent returns the signed profit of the position at the given
// price, as a percentage of the entry price. Positive means the
// position is in profit. Returns 0 for flat positions.
func (p Position) PnLPercent(price float64) float64 {
	if !p.IsOpen() || p.EntryPrice == 0 {
		return 0
	}
	switch p.Direction {
	case DirLong:
		return (price - p.EntryPrice) / p.EntryPrice * 100
	case DirShort:
		return (p.EntryPrice - price) / p.EntryPrice * 100
	}
	return 0
}
