package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTTL = errors.New("invalid ttl")

var ttlUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseTTL parses token lifetimes written as "<integer><unit>" where unit is
// one of s, m, h or d. A bare integer is a number of milliseconds.
func ParseTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidTTL)
	}

	unit := time.Millisecond
	digits := value
	if mult, ok := ttlUnits[value[len(value)-1]]; ok {
		unit = mult
		digits = value[:len(value)-1]
	}

	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, value)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, value)
	}
	if n > int64(1<<63-1)/int64(unit) {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidTTL, value)
	}

	return time.Duration(n) * unit, nil
}
