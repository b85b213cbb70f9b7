// Package scribe is a terminal text editor core: a character-addressed
// buffer with undo history, soft wrapping over styled segments, visual-line
// cursor motion and markdown styling, plus a Bubble Tea component on top.
package scribe

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version is the release version without the leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag is Version as a git tag.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a SemVer 2.0.0 version without a "v" prefix.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
