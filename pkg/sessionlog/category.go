package sessionlog

import (
	"fmt"
	"strings"
)

// Category is the severity tag of a log entry.
type Category string

const (
	// INF marks informational entries.
	INF Category = "INF"
	// WAR marks warning entries.
	WAR Category = "WAR"
	// ERR marks error entries.
	ERR Category = "ERR"
)

// String returns the three-letter tag as written to the log file.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case INF, WAR, ERR:
		return true
	}
	return false
}

// ParseCategory converts a tag string into a Category. Matching is
// case-insensitive so read-back of hand-edited files stays forgiving.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case INF:
		return INF, nil
	case WAR:
		return WAR, nil
	case ERR:
		return ERR, nil
	}
	return "", fmt.Errorf("unknown log category %q", s)
}
