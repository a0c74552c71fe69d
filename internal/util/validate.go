package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validRefChars matches the characters git allows in commit hashes, tags and
// branch names that are also safe inside a double-quoted shell argument.
var validRefChars = regexp.MustCompile(`^[a-zA-Z0-9._/\-]+$`)

const imageURNPrefix = "urn:publicid:IDN+"

// ValidateCommitRef checks that a software version reference (commit hash,
// tag or branch) can be passed to the deploy script verbatim:
//   - Not empty
//   - Only alphanumeric characters, dots, underscores, slashes and hyphens
//   - Must not start with a hyphen (it would be read as an option)
func ValidateCommitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("version reference must not be empty")
	}

	if !validRefChars.MatchString(ref) {
		return fmt.Errorf("version reference %q contains invalid characters (only a-z, A-Z, 0-9, '.', '_', '/', and '-' are allowed)", ref)
	}

	if ref[0] == '-' {
		return fmt.Errorf("version reference must not start with a hyphen, got %q", ref)
	}

	return nil
}

// ValidateImageURN checks that a disk image reference is a testbed image URN
// of the form urn:publicid:IDN+<authority>+image+<project>:<name>.
func ValidateImageURN(urn string) error {
	if !strings.HasPrefix(urn, imageURNPrefix) {
		return fmt.Errorf("disk image %q must start with %q", urn, imageURNPrefix)
	}

	rest := strings.TrimPrefix(urn, imageURNPrefix)
	authority, name, ok := strings.Cut(rest, "+image+")
	if !ok {
		return fmt.Errorf("disk image %q is not an image URN (missing \"+image+\")", urn)
	}
	if authority == "" {
		return fmt.Errorf("disk image %q has an empty authority", urn)
	}
	if name == "" {
		return fmt.Errorf("disk image %q has an empty image name", urn)
	}
	if strings.ContainsAny(urn, " \t\n\"'") {
		return fmt.Errorf("disk image %q contains whitespace or quotes", urn)
	}

	return nil
}
