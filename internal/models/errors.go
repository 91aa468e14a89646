package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrEmptySeason       = errors.New("season has no lap records")
	ErrNoDrivers         = errors.New("season has no drivers")
	ErrInvalidTrialCount = errors.New("trial count must be positive")
	ErrUnknownCompound   = errors.New("unknown tyre compound")
	ErrInvalidLapTime    = errors.New("lap time must be positive")
	ErrEmptyPool         = errors.New("season pool is empty")
	ErrNotFound          = errors.New("record not found")
)

// SeasonError ties a failure to the season it came from
type SeasonError struct {
	SeasonID string
	Err      error
}

func (e *SeasonError) Error() string {
	return fmt.Sprintf("season %s: %v", e.SeasonID, e.Err)
}

func (e *SeasonError) Unwrap() error {
	return e.Err
}

// UnknownCompoundError identifies the lap carrying an unrecognized compound label
type UnknownCompoundError struct {
	SeasonID  string
	Driver    string
	LapNumber int
	Label     string
}

func (e *UnknownCompoundError) Error() string {
	if e.SeasonID == "" {
		return fmt.Sprintf("%v %q (driver %s, lap %d)", ErrUnknownCompound, e.Label, e.Driver, e.LapNumber)
	}
	return fmt.Sprintf("%v %q (season %s, driver %s, lap %d)", ErrUnknownCompound, e.Label, e.SeasonID, e.Driver, e.LapNumber)
}

func (e *UnknownCompoundError) Unwrap() error {
	return ErrUnknownCompound
}
