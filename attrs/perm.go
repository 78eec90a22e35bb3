// Copyright © NGRSoftlab 2020-2025

// Package attrs translates between the wire dialect's 4-digit octal
// permission strings, os.FileMode, and epoch-second timestamps.
package attrs

import (
	"fmt"
	"os"
	"strconv"
)

// ToOctal folds the nine POSIX rwx/ugo bits of mode into a 4-digit octal
// string, e.g. 0644 -> "0644". Bits outside perm (setuid/setgid/sticky,
// Go's ModeDir etc.) are dropped, matching the wire grammar's `mode` rule.
func ToOctal(mode os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(mode.Perm()))
}

// FromOctal parses a 4-digit (or shorter) octal permission string into an
// os.FileMode restricted to the nine rwx/ugo bits; setuid/setgid/sticky
// bits present in a longer field are ignored, not propagated.
func FromOctal(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parse octal perm %q: %w", s, err)
	}
	return os.FileMode(v) & os.ModePerm, nil
}
