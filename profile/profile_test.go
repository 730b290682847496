package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/termlaunch/errors"
)

const (
	defaultID = "b1dcc9dd-5262-4d8d-a863-c897e6d979b9"
	otherID   = "2a0c9b8e-6c43-4a4e-9f0a-6d27f9c4a111"
)

func newTestList() *List {
	return NewList(defaultID,
		Profile{ID: defaultID, Name: "Default"},
		Profile{ID: otherID, Name: "Monitoring"},
	)
}

func TestResolveNameOrID(t *testing.T) {
	l := newTestList()

	id, err := l.ResolveNameOrID("Monitoring")
	require.NoError(t, err)
	assert.Equal(t, otherID, id)

	id, err = l.ResolveNameOrID(otherID)
	require.NoError(t, err)
	assert.Equal(t, otherID, id)

	// Empty reference resolves to the default profile
	id, err = l.ResolveNameOrID("")
	require.NoError(t, err)
	assert.Equal(t, defaultID, id)

	_, err = l.ResolveNameOrID("no-such-profile")
	assert.True(t, errors.Is(err, errors.ErrCodeProfileNotFound))
}

func TestResolveID(t *testing.T) {
	l := newTestList()

	id, err := l.ResolveID(defaultID)
	require.NoError(t, err)
	assert.Equal(t, defaultID, id)

	// Display names never match by id
	_, err = l.ResolveID("Monitoring")
	assert.True(t, errors.Is(err, errors.ErrCodeProfileNotFound))

	// Well-formed but unknown UUIDs fail
	_, err = l.ResolveID("00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}

func TestNoDefaultConfigured(t *testing.T) {
	l := NewList("")
	_, err := l.ResolveNameOrID("")
	assert.True(t, errors.Is(err, errors.ErrCodeProfileNotFound))
}
