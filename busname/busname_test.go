package busname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAppID(t *testing.T) {
	valid := []string{
		"org.example.Terminal",
		"com.example.my-app",
		"a.b",
		"net.example._private",
	}
	for _, s := range valid {
		assert.True(t, IsValidAppID(s), "expected valid: %q", s)
	}

	invalid := []string{
		"",
		"single",
		"org..Terminal",
		".org.example",
		"org.example.",
		"org.1example",
		"org.exam ple",
		"org/example",
	}
	for _, s := range invalid {
		assert.False(t, IsValidAppID(s), "expected invalid: %q", s)
	}
}

func TestIsValidUniqueName(t *testing.T) {
	assert.True(t, IsValidUniqueName(":1.42"))
	assert.True(t, IsValidUniqueName(":1.0.2"))

	assert.False(t, IsValidUniqueName("org.example"))
	assert.False(t, IsValidUniqueName(":"))
	assert.False(t, IsValidUniqueName(":1"))
	assert.False(t, IsValidUniqueName(":1."))
	assert.False(t, IsValidUniqueName(":1..2"))
	assert.False(t, IsValidUniqueName(":1.a b"))
}

func TestIsValidObjectPath(t *testing.T) {
	assert.True(t, IsValidObjectPath("/"))
	assert.True(t, IsValidObjectPath("/org/example/Terminal/screen/3b6b1089"))

	assert.False(t, IsValidObjectPath(""))
	assert.False(t, IsValidObjectPath("relative/path"))
	assert.False(t, IsValidObjectPath("/trailing/"))
	assert.False(t, IsValidObjectPath("/with-dash"))
}
