package shipment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCloseTime is returned for a slider value in neither supported encoding.
var ErrInvalidCloseTime = errors.New("shipment: invalid pickup close time")

// ParseCloseTime converts the later handle of the pickup slider to 24-hour "HH:MM".
// It accepts "h:mm am/pm" (12pm stays 12, 12am becomes 0) and plain minutes since midnight.
func ParseCloseTime(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrInvalidCloseTime
	}

	if minutes, err := strconv.Atoi(s); err == nil {
		if minutes < 0 || minutes >= 24*60 {
			return "", fmt.Errorf("%w: %q out of range", ErrInvalidCloseTime, raw)
		}
		return formatClock(minutes/60, minutes%60), nil
	}

	clock, period, ok := strings.Cut(s, " ")
	if !ok {
		if strings.HasSuffix(s, "am") || strings.HasSuffix(s, "pm") {
			clock, period = s[:len(s)-2], s[len(s)-2:]
		} else {
			return "", fmt.Errorf("%w: %q", ErrInvalidCloseTime, raw)
		}
	}
	period = strings.TrimSpace(period)

	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCloseTime, raw)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 1 || hours > 12 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCloseTime, raw)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCloseTime, raw)
	}

	switch period {
	case "pm":
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCloseTime, raw)
	}
	return formatClock(hours, minutes), nil
}

func formatClock(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
