//go:build !unit
// +build !unit

package version

import (
	"strings"
	"testing"
)

// TestFlagEmpty fails if version.Flag is not empty, which must be the case on
// the master branch.
func TestFlagEmpty(t *testing.T) {
	if len(Flag) > 0 {
		t.Fatalf("Version Flag is not empty: %s", Flag)
	}
}

func TestVersionFormat(t *testing.T) {
	if parts := strings.Split(strings.SplitN(Version, "-", 2)[0], "."); len(parts) != 3 {
		t.Fatalf("Version should be major.minor.patch, not %s", Version)
	}
}
