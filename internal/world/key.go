package world

import (
	"fmt"
	"strings"
)

// DefaultNamespace is applied to keys given without an explicit namespace.
const DefaultNamespace = "skirmish"

// Key identifies a world, formatted as "namespace:value".
type Key string

// ParseKey normalizes a raw key string. A missing namespace gets
// DefaultNamespace. Both parts must be non-empty lowercase identifiers.
func ParseKey(raw string) (Key, error) {
	ns, value := DefaultNamespace, raw
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		ns, value = raw[:i], raw[i+1:]
	}
	if !validKeyPart(ns) || !validKeyPart(value) {
		return "", fmt.Errorf("invalid world key %q", raw)
	}
	return Key(ns + ":" + value), nil
}

func validKeyPart(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

// Value returns the part after the namespace.
func (k Key) Value() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k)[i+1:]
	}
	return string(k)
}

func (k Key) String() string { return string(k) }
