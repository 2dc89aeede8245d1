package schedule

import (
	"strings"
)

// Days the daycare is open, in display order. Sunday is closed.
var Days = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// TimeWindows lists the bookable windows of a single day, in order.
// The strings must match the client grid exactly (en dash included).
var TimeWindows = []string{
	"9:00–10:00 AM",
	"10:00–11:00 AM",
	"11:00–12:00 PM",
	"12:00–1:00 PM",
	"1:00–2:00 PM",
	"2:00–3:00 PM",
	"3:00–4:00 PM",
}

// Separator joins day and time window into a slot key.
const Separator = "|"

var validKeys = buildKeySet()

func buildKeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(Days)*len(TimeWindows))
	for _, d := range Days {
		for _, w := range TimeWindows {
			set[Key(d, w)] = struct{}{}
		}
	}
	return set
}

// Key builds the canonical slot key for a day and time window.
func Key(day, window string) string {
	return day + Separator + window
}

// IsValidKey reports whether key names a slot in the weekly grid.
func IsValidKey(key string) bool {
	_, ok := validKeys[key]
	return ok
}

// SplitKey splits a slot key into its day and time window parts.
// The second return value is false if the key is not a valid slot key.
func SplitKey(key string) (day, window string, ok bool) {
	if !IsValidKey(key) {
		return "", "", false
	}
	day, window, _ = strings.Cut(key, Separator)
	return day, window, true
}

// AllKeys returns every slot key of the weekly grid in day-major order.
func AllKeys() []string {
	keys := make([]string, 0, len(Days)*len(TimeWindows))
	for _, d := range Days {
		for _, w := range TimeWindows {
			keys = append(keys, Key(d, w))
		}
	}
	return keys
}
