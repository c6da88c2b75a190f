// Package timeparse resolves the relative time expressions accepted by the
// create flows ("5m", "1h", "2d") into absolute unix-millisecond timestamps.
package timeparse

import (
	"regexp"
	"strconv"
	"time"

	"challenges-backend/models"
)

var relativeRe = regexp.MustCompile(`^(\d+)(s|m|h|d)$`)

// ParseRelative converts an expression like "5m" into a duration. Supported
// units: s, m, h, d.
func ParseRelative(expr string) (time.Duration, error) {
	match := relativeRe.FindStringSubmatch(expr)
	if match == nil {
		return 0, models.NewValidationError("time", "invalid relative time, expected forms like 5m, 1h, 2d")
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, models.NewValidationError("time", "invalid relative time value")
	}
	switch match[2] {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	default:
		return time.Duration(n) * 24 * time.Hour, nil
	}
}

// TimeRange resolves a start offset and a duration, both relative to now,
// into absolute start and end timestamps in unix milliseconds.
func TimeRange(startExpr, durationExpr string) (startDate, endDate int64, err error) {
	start, err := ParseRelative(startExpr)
	if err != nil {
		return 0, 0, models.NewValidationError("startTime", "invalid relative time, expected forms like 5m, 1h, 2d")
	}
	dur, err := ParseRelative(durationExpr)
	if err != nil {
		return 0, 0, models.NewValidationError("duration", "invalid relative time, expected forms like 5m, 1h, 2d")
	}
	startDate = time.Now().Add(start).UnixMilli()
	endDate = startDate + dur.Milliseconds()
	return startDate, endDate, nil
}
