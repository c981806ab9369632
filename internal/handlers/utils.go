package handlers

import "strconv"

// parseSeed reads an optional seed query value; empty means 0 (time seeded).
func parseSeed(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
