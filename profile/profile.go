// Package profile resolves the profile references accepted on the command
// line. A reference is either a profile UUID or a display name; internal
// options pass UUIDs only.
package profile

import (
	"github.com/google/uuid"

	"github.com/grovetools/termlaunch/errors"
)

// Profile is one known terminal profile.
type Profile struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// List is an ordered profile table with a designated default.
type List struct {
	profiles  []Profile
	defaultID string
}

// NewList creates a profile list. defaultID names the profile used when a
// lookup is asked for "no profile in particular".
func NewList(defaultID string, profiles ...Profile) *List {
	return &List{profiles: profiles, defaultID: defaultID}
}

// ResolveNameOrID resolves a UUID-or-display-name reference to a profile
// id. An empty reference resolves to the default profile.
func (l *List) ResolveNameOrID(ref string) (string, error) {
	if ref == "" {
		if l.defaultID == "" {
			return "", errors.ProfileNotFound("default")
		}
		return l.defaultID, nil
	}

	if _, err := uuid.Parse(ref); err == nil {
		for _, p := range l.profiles {
			if p.ID == ref {
				return p.ID, nil
			}
		}
	}

	for _, p := range l.profiles {
		if p.Name == ref {
			return p.ID, nil
		}
	}

	return "", errors.ProfileNotFound(ref)
}

// ResolveID resolves a reference strictly by UUID, with no name matching
// and no default fallback.
func (l *List) ResolveID(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.ProfileNotFound(id)
	}
	for _, p := range l.profiles {
		if p.ID == id {
			return p.ID, nil
		}
	}
	return "", errors.ProfileNotFound(id)
}
