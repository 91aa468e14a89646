package models

import (
	"strings"
	"time"
)

// Compound is the tyre compound a lap was driven on
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

// UnknownCompoundLabel replaces blank compound cells
const UnknownCompoundLabel = "UNKNOWN"

// ParseCompound normalizes a compound label. The second return value is false
// for labels outside the known set; the normalized label is still returned.
func ParseCompound(label string) (Compound, bool) {
	c := Compound(strings.ToUpper(strings.TrimSpace(label)))
	return c, c.IsKnown()
}

// IsKnown reports whether the compound is one of the recognized labels
func (c Compound) IsKnown() bool {
	switch c {
	case CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet:
		return true
	default:
		return false
	}
}

// Weather is the single weather flag carried by a season
type Weather string

const (
	WeatherDry  Weather = "DRY"
	WeatherRain Weather = "RAIN"
)

// ParseWeather parses a weather flag, case-insensitive
func ParseWeather(value string) (Weather, bool) {
	w := Weather(strings.ToUpper(strings.TrimSpace(value)))
	switch w {
	case WeatherDry, WeatherRain:
		return w, true
	default:
		return "", false
	}
}

// IsRain reports whether the flag marks a wet season
func (w Weather) IsRain() bool {
	return w == WeatherRain
}

// LapRecord is one timed lap from a historical session
type LapRecord struct {
	Driver    string        `db:"driver" json:"driver" validate:"required"`
	LapNumber int           `db:"lap_number" json:"lap_number" validate:"gte=0"`
	LapTime   time.Duration `db:"lap_time" json:"lap_time" validate:"gt=0"`
	Compound  Compound      `db:"compound" json:"compound" validate:"required"`
}

// AdjustedLapRecord is a lap time after weather and compound adjustment.
// It is derived per trial and never written back to the season.
type AdjustedLapRecord struct {
	Driver          string        `json:"driver"`
	AdjustedLapTime time.Duration `json:"adjusted_lap_time"`
}
