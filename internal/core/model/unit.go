package model

import "fmt"

// Unit is the display unit for distances. Cached snapshots are keyed by
// unit, so the string values double as cache file suffixes.
type Unit string

const (
	UnitMiles      Unit = "miles"
	UnitKilometers Unit = "km"
)

// ParseUnit validates a user-supplied unit string.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMiles, UnitKilometers:
		return Unit(s), nil
	default:
		return "", fmt.Errorf("invalid unit %q (expected miles or km)", s)
	}
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == UnitMiles {
		return UnitKilometers
	}
	return UnitMiles
}

func (u Unit) String() string {
	return string(u)
}
