package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	offsetPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	offsetUnits   = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
	}
)

// ParseOffset parses a human-friendly reminder offset such as "15m",
// "1h30m", or "1d" and returns the duration along with a canonical
// compact representation. Empty input means no offset.
func ParseOffset(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, "", nil
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := offsetPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid offset segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid offset value %q: %w", matches[1], err)
		}
		base, ok := offsetUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported offset unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("offset must be greater than zero")
	}
	return total, FormatOffset(total), nil
}

// FormatOffset renders a duration using day/hour/minute tokens.
func FormatOffset(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, "")
}
