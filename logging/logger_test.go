package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf)

	log.Warnf("zoom factor %q is too small, using %g", "0.1", 0.25)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# "), "diagnostics must be shell comments, got %q", out)
	assert.Contains(t, out, "too small")
}

func TestVerbosityGating(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf)

	// Detail messages are hidden at the default verbosity
	log.Detailf("option given twice for the same window")
	assert.Empty(t, buf.String())

	log.Louder()
	log.Detailf("option given twice for the same window")
	assert.Contains(t, buf.String(), "given twice")

	buf.Reset()
	log.Quieter()
	log.Warnf("suppressed")
	log.Detailf("suppressed")
	assert.Empty(t, buf.String())
}
