package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/pitwall/internal/models"
)

var nanosPerSecond = decimal.NewFromInt(int64(time.Second))

// ParseLapTime parses a lap time cell. Supported forms:
//
//	83.456                   seconds
//	1:23.456, 1:01:23.456    m:ss / h:mm:ss
//	1m23.456s                Go duration
//	0 days 00:01:23.456000   pandas timedelta
//
// Blank cells, NaT and NaN return ErrBlankLapTime.
func ParseLapTime(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "nat", "nan", "none", "null":
		return 0, ErrBlankLapTime
	}

	if idx := strings.Index(value, "day"); idx >= 0 {
		days, err := strconv.Atoi(strings.TrimSpace(value[:idx]))
		if err != nil {
			return 0, fmt.Errorf("%w: lap time %q", ErrInvalidData, value)
		}
		rest := strings.TrimSpace(value[idx:])
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(rest, "days"), "day"))
		clock, err := parseClock(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: lap time %q", ErrInvalidData, value)
		}
		return time.Duration(days)*24*time.Hour + clock, nil
	}

	if strings.Contains(value, ":") {
		clock, err := parseClock(value)
		if err != nil {
			return 0, fmt.Errorf("%w: lap time %q", ErrInvalidData, value)
		}
		return clock, nil
	}

	if last := value[len(value)-1]; last == 's' || last == 'm' || last == 'h' {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("%w: lap time %q", ErrInvalidData, value)
		}
		return d, nil
	}

	seconds, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%w: lap time %q", ErrInvalidData, value)
	}
	return secondsToDuration(seconds), nil
}

// parseClock parses m:ss.fff or h:mm:ss.fff
func parseClock(value string) (time.Duration, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidData
	}
	seconds, err := decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return 0, err
	}
	total := secondsToDuration(seconds)

	minutes, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, err
	}
	total += time.Duration(minutes) * time.Minute

	if len(parts) == 3 {
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, err
		}
		total += time.Duration(hours) * time.Hour
	}
	return total, nil
}

func secondsToDuration(seconds decimal.Decimal) time.Duration {
	return time.Duration(seconds.Mul(nanosPerSecond).Round(0).IntPart())
}

// normalizeHeader maps "Lap_Time", "LapTime" and "lap time" to "laptime"
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(name)
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}
	return index
}

// ParseLapsCSV reads lap records from CSV with driver, lap_time and compound
// columns and an optional lap_number column. Rows with a blank lap time are
// skipped and counted.
func ParseLapsCSV(r io.Reader) ([]models.LapRecord, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: empty laps file", ErrInvalidData)
		}
		return nil, 0, fmt.Errorf("failed to read laps header: %w", err)
	}
	index := headerIndex(header)
	for _, column := range []string{"driver", "laptime", "compound"} {
		if _, ok := index[column]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}
	lapNumberCol, hasLapNumber := index["lapnumber"]

	var laps []models.LapRecord
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read laps row %d: %w", line, err)
		}

		lapTime, err := ParseLapTime(cell(row, index["laptime"]))
		if errors.Is(err, ErrBlankLapTime) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", line, err)
		}

		lapNumber := 0
		if hasLapNumber {
			if raw := cell(row, lapNumberCol); raw != "" {
				f, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("row %d: %w: lap number %q", line, ErrInvalidData, raw)
				}
				lapNumber = int(f)
			}
		}

		label := cell(row, index["compound"])
		if label == "" {
			label = models.UnknownCompoundLabel
		}
		compound, _ := models.ParseCompound(label)

		laps = append(laps, models.LapRecord{
			Driver:    cell(row, index["driver"]),
			LapNumber: lapNumber,
			LapTime:   lapTime,
			Compound:  compound,
		})
	}

	return laps, skipped, nil
}

// ParseWeatherCSV reports whether any sample in a weather CSV has rainfall
func ParseWeatherCSV(r io.Reader) (bool, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf("%w: empty weather file", ErrInvalidData)
		}
		return false, fmt.Errorf("failed to read weather header: %w", err)
	}
	rainCol, ok := headerIndex(header)["rainfall"]
	if !ok {
		return false, fmt.Errorf("%w: rainfall", ErrMissingColumn)
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		line++
		if err != nil {
			return false, fmt.Errorf("failed to read weather row %d: %w", line, err)
		}
		raw := cell(row, rainCol)
		if raw == "" {
			continue
		}
		rain, err := strconv.ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("row %d: %w: rainfall %q", line, ErrInvalidData, raw)
		}
		if rain {
			return true, nil
		}
	}
}

// resolveWeather picks the season weather: an explicit flag wins, then the
// weather samples, then DRY.
func resolveWeather(flag string, samples io.Reader) (models.Weather, error) {
	if flag != "" {
		weather, ok := models.ParseWeather(flag)
		if !ok {
			return "", fmt.Errorf("%w: weather %q", ErrInvalidData, flag)
		}
		return weather, nil
	}
	if samples != nil {
		rain, err := ParseWeatherCSV(samples)
		if err != nil {
			return "", err
		}
		if rain {
			return models.WeatherRain, nil
		}
	}
	return models.WeatherDry, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
