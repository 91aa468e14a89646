package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/pitwall/internal/models"
)

// Default adjustment factors
const (
	DefaultRainPenalty  = 1.10
	DefaultSoftFactor   = 0.98
	DefaultMediumFactor = 1.02
	DefaultHardFactor   = 1.05
)

// CompoundPolicy decides how labels outside the known compound set are handled
type CompoundPolicy string

const (
	// PolicyStrict rejects unknown compounds with an UnknownCompoundError
	PolicyStrict CompoundPolicy = "strict"
	// PolicyFallback applies the HARD factor to unknown compounds
	PolicyFallback CompoundPolicy = "fallback"
)

// ParseCompoundPolicy parses a policy name, empty means strict
func ParseCompoundPolicy(value string) (CompoundPolicy, error) {
	switch CompoundPolicy(value) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyFallback:
		return PolicyFallback, nil
	default:
		return "", fmt.Errorf("unknown compound policy %q", value)
	}
}

// Adjuster maps a raw lap to an adjusted lap. Implementations must be pure.
type Adjuster interface {
	Adjust(lap models.LapRecord, weather models.Weather) (models.AdjustedLapRecord, error)
}

// AdjustmentModel applies the weather factor, then the compound factor, to a
// raw lap time and rounds once to the nearest nanosecond.
type AdjustmentModel struct {
	RainPenalty  float64
	SoftFactor   float64
	MediumFactor float64
	HardFactor   float64
	Policy       CompoundPolicy
}

// DefaultAdjustmentModel returns the reference factors with the strict policy
func DefaultAdjustmentModel() AdjustmentModel {
	return AdjustmentModel{
		RainPenalty:  DefaultRainPenalty,
		SoftFactor:   DefaultSoftFactor,
		MediumFactor: DefaultMediumFactor,
		HardFactor:   DefaultHardFactor,
		Policy:       PolicyStrict,
	}
}

// Validate validates adjustment factors
func (m AdjustmentModel) Validate() error {
	factors := map[string]float64{
		"rain penalty":  m.RainPenalty,
		"soft factor":   m.SoftFactor,
		"medium factor": m.MediumFactor,
		"hard factor":   m.HardFactor,
	}
	for name, factor := range factors {
		if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
			return fmt.Errorf("%s must be a positive finite number, got %v", name, factor)
		}
	}
	if _, err := ParseCompoundPolicy(string(m.Policy)); err != nil {
		return err
	}
	return nil
}

// WeatherFactor returns the multiplier for a season's weather
func (m AdjustmentModel) WeatherFactor(weather models.Weather) float64 {
	if weather.IsRain() {
		return m.RainPenalty
	}
	return 1.0
}

// CompoundFactor returns the multiplier for a compound.
// INTERMEDIATE and WET share the HARD factor.
func (m AdjustmentModel) CompoundFactor(compound models.Compound) (float64, error) {
	switch compound {
	case models.CompoundSoft:
		return m.SoftFactor, nil
	case models.CompoundMedium:
		return m.MediumFactor, nil
	case models.CompoundHard, models.CompoundIntermediate, models.CompoundWet:
		return m.HardFactor, nil
	}
	if m.Policy == PolicyFallback {
		return m.HardFactor, nil
	}
	return 0, &models.UnknownCompoundError{Label: string(compound)}
}

// Adjust implements Adjuster
func (m AdjustmentModel) Adjust(lap models.LapRecord, weather models.Weather) (models.AdjustedLapRecord, error) {
	compoundFactor, err := m.CompoundFactor(lap.Compound)
	if err != nil {
		if uce, ok := err.(*models.UnknownCompoundError); ok {
			enriched := *uce
			enriched.Driver = lap.Driver
			enriched.LapNumber = lap.LapNumber
			return models.AdjustedLapRecord{}, &enriched
		}
		return models.AdjustedLapRecord{}, err
	}

	value := float64(lap.LapTime)
	value *= m.WeatherFactor(weather)
	value *= compoundFactor

	return models.AdjustedLapRecord{
		Driver:          lap.Driver,
		AdjustedLapTime: time.Duration(math.Round(value)),
	}, nil
}
