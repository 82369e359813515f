package bank

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank document major version this build reads.
const SupportedMajor = "v1"

var (
	ErrBadVersion         = errors.New("malformed document version")
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

// checkVersion accepts any v1.x document version, with or without the
// leading "v". An empty version is treated as v1.
func checkVersion(raw string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q", ErrBadVersion, raw)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedVersion, raw, SupportedMajor)
	}
	return nil
}
