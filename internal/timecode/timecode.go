// Package timecode converts human-readable film timecodes ("M:SS" or
// "H:MM:SS") to scalar offsets used for positional math.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for any text that is not "M:SS" or "H:MM:SS".
var ErrInvalidFormat = errors.New("invalid timecode format")

// Largest leading fields whose total still fits in a time.Duration.
const (
	maxMinutes = (math.MaxInt64 - int64(59*time.Second)) / int64(time.Minute)
	maxHours   = (math.MaxInt64 - int64(59*time.Minute+59*time.Second)) / int64(time.Hour)
)

// Parse converts text to a duration. The seconds field, and the minutes
// field of the three-part form, must be exactly two digits below 60.
// Malformed input is an error, never a zero offset.
func Parse(text string) (time.Duration, error) {
	s := strings.TrimSpace(text)
	parts := strings.Split(s, ":")

	var h, m, sec int
	var err error
	switch len(parts) {
	case 2:
		if m, err = field(parts[0], 0, -1); err != nil || int64(m) > maxMinutes {
			return 0, invalid(text)
		}
		if sec, err = field(parts[1], 2, 60); err != nil {
			return 0, invalid(text)
		}
	case 3:
		if h, err = field(parts[0], 0, -1); err != nil || int64(h) > maxHours {
			return 0, invalid(text)
		}
		if m, err = field(parts[1], 2, 60); err != nil {
			return 0, invalid(text)
		}
		if sec, err = field(parts[2], 2, 60); err != nil {
			return 0, invalid(text)
		}
	default:
		return 0, invalid(text)
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// Seconds returns the timecode as total seconds.
func Seconds(text string) (float64, error) {
	d, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}

// Minutes returns the timecode as total minutes.
func Minutes(text string) (float64, error) {
	d, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return d.Minutes(), nil
}

// Format renders d as "M:SS" below one hour and "H:MM:SS" otherwise.
// Sub-second precision is truncated.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// field parses an all-digit field. width > 0 requires exactly that many
// digits; limit > 0 is an exclusive upper bound.
func field(s string, width, limit int) (int, error) {
	if s == "" || (width > 0 && len(s) != width) {
		return 0, ErrInvalidFormat
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	if limit > 0 && n >= limit {
		return 0, ErrInvalidFormat
	}
	return n, nil
}

func invalid(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFormat, text)
}
