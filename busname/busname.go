// Package busname validates the message-bus identifiers the launcher
// accepts from the command line and the environment: application ids,
// unique connection names, and object paths.
package busname

import (
	"strings"

	"github.com/godbus/dbus/v5"
)

const maxNameLength = 255

// IsValidAppID reports whether s is a valid application id: a reverse-DNS
// style name of at least two non-empty elements, where no element starts
// with a digit.
func IsValidAppID(s string) bool {
	if s == "" || len(s) > maxNameLength {
		return false
	}
	elements := strings.Split(s, ".")
	if len(elements) < 2 {
		return false
	}
	for _, e := range elements {
		if !validElement(e, false) {
			return false
		}
	}
	return true
}

// IsValidUniqueName reports whether s is a valid unique connection name:
// a colon followed by at least two elements, whose elements may start
// with a digit.
func IsValidUniqueName(s string) bool {
	if !strings.HasPrefix(s, ":") {
		return false
	}
	if len(s) > maxNameLength {
		return false
	}
	elements := strings.Split(s[1:], ".")
	if len(elements) < 2 {
		return false
	}
	for _, e := range elements {
		if !validElement(e, true) {
			return false
		}
	}
	return true
}

// IsValidObjectPath reports whether s is a valid object path.
func IsValidObjectPath(s string) bool {
	return dbus.ObjectPath(s).IsValid()
}

func validElement(e string, digitsLead bool) bool {
	if e == "" {
		return false
	}
	for i, r := range e {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
		case r >= '0' && r <= '9':
			if i == 0 && !digitsLead {
				return false
			}
		default:
			return false
		}
	}
	return true
}
