// Package convert normalizes raw stat leaf values to numbers.
package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnrecognizedFormat marks a string leaf that is neither a percentage nor
// a duration. Structural absence is handled upstream; this indicates the
// data-shape assumption itself was violated and must be surfaced.
var ErrUnrecognizedFormat = errors.New("unrecognized stat value format")

// Kind classifies the syntactic shape of a raw leaf value.
type Kind int

const (
	KindNumber Kind = iota
	KindPercent
	KindDuration
	KindUnrecognized
)

// Unit selects the output unit for duration conversion.
type Unit int

const (
	Seconds Unit = iota
	Minutes
	Hours
)

// Classify inspects a raw leaf value once, at the conversion boundary.
func Classify(raw any) Kind {
	switch v := raw.(type) {
	case float64, float32, int, int64:
		return KindNumber
	case string:
		if strings.ContainsRune(v, '%') {
			return KindPercent
		}
		if strings.ContainsRune(v, ':') {
			return KindDuration
		}
		return KindUnrecognized
	default:
		return KindUnrecognized
	}
}

// Value converts a raw leaf value to a float64. Numbers pass through
// unchanged; percentage and duration strings are parsed. Any other shape
// returns ErrUnrecognizedFormat.
func Value(raw any) (float64, error) {
	switch Classify(raw) {
	case KindNumber:
		return asNumber(raw), nil
	case KindPercent:
		n, err := Percent(raw.(string))
		return float64(n), err
	case KindDuration:
		return DurationIn(raw.(string), Seconds)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, raw)
	}
}

// Percent parses a percentage string such as "45%". Only the integer portion
// is kept; the reference data carries no fractional percentages.
func Percent(s string) (int, error) {
	head, _, ok := strings.Cut(s, "%")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, s)
	}
	head, _, _ = strings.Cut(strings.TrimSpace(head), ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, s)
	}
	return n, nil
}

// DurationIn parses a colon-separated duration ("hh:mm:ss", "mm:ss", or
// "ss") and expresses it in the requested unit. Hours round to one decimal;
// minutes round to the nearest whole minute (divisor 60).
func DurationIn(s string, unit Unit) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, s)
	}
	weights := []int{1, 60, 3600}
	total := 0
	for i := 0; i < len(parts); i++ {
		segment := parts[len(parts)-1-i]
		n, err := strconv.Atoi(segment)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, s)
		}
		total += n * weights[i]
	}
	switch unit {
	case Hours:
		return math.Round(float64(total)/3600*10) / 10, nil
	case Minutes:
		return math.Round(float64(total) / 60), nil
	default:
		return float64(total), nil
	}
}

func asNumber(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
