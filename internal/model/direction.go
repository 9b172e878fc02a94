package model

import (
	"fmt"
	"strings"
)

// Direction is the categorical policy action taken at a rate decision.
type Direction string

const (
	DirectionHike Direction = "hike"
	DirectionHold Direction = "hold"
	DirectionCut  Direction = "cut"
)

// Directions lists every valid direction in display order.
var Directions = []Direction{DirectionHike, DirectionHold, DirectionCut}

// Valid reports whether d is one of hike, hold or cut.
func (d Direction) Valid() bool {
	switch d {
	case DirectionHike, DirectionHold, DirectionCut:
		return true
	}
	return false
}

// ParseDirection accepts the canonical names plus a few common aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hike", "raise", "up":
		return DirectionHike, nil
	case "hold", "pause", "unchanged":
		return DirectionHold, nil
	case "cut", "lower", "down":
		return DirectionCut, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// DirectionPtr is a helper for building optional directions.
func DirectionPtr(d Direction) *Direction { return &d }

// Difficulty grades how hard a scenario is to call.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
