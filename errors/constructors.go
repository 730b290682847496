package errors

import (
	"fmt"
)

// BadValue creates an error for a malformed option argument
func BadValue(option, format string, args ...interface{}) *LaunchError {
	return New(ErrCodeBadValue, fmt.Sprintf(format, args...)).
		WithDetail("option", option)
}

// UnsupportedOption creates an error for an option retired from a
// previous version that can no longer be honored
func UnsupportedOption(option string) *LaunchError {
	return New(ErrCodeUnknownOption,
		fmt.Sprintf("option %q is no longer supported", option)).
		WithDetail("option", option)
}

// UsageConflict creates an error for options that contradict earlier ones
func UsageConflict(format string, args ...interface{}) *LaunchError {
	return New(ErrCodeUsageConflict, fmt.Sprintf(format, args...))
}

// InvalidConfigFile creates an error for a document that is not a saved
// launch configuration at all
func InvalidConfigFile() *LaunchError {
	return New(ErrCodeInvalidConfigFile, "not a valid launch configuration file")
}

// IncompatibleConfigFile creates an error for a configuration document
// whose declared version cannot be merged
func IncompatibleConfigFile(version, compatVersion int) *LaunchError {
	return New(ErrCodeIncompatibleConfigFile, "incompatible launch configuration file version").
		WithDetail("version", version).
		WithDetail("compat_version", compatVersion)
}

// ProfileNotFound creates an error for an unresolvable profile reference
func ProfileNotFound(ref string) *LaunchError {
	return New(ErrCodeProfileNotFound, fmt.Sprintf("profile %q not found", ref)).
		WithDetail("profile", ref)
}
