// Package config implements the Configuration Probe of spec §4.8: mode
// selection for one carrier node, consulting (in order) a doc-comment
// `@reflection` tag, the transformer's configured override, and the
// nearest ancestor project configuration file, defaulting to `never`.
package config

import (
	"strconv"
	"strings"
)

// Mode is a resolved reflection mode. ModeUnset means "this source had
// nothing to say" — callers fall through to the next resolution step
// rather than treating it as a concrete decision.
type Mode int

const (
	ModeUnset Mode = iota
	ModeAlways
	ModeNever
)

// String implements fmt.Stringer for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "default"
	}
}

// ParseMode parses a `reflection` value from either a doc-comment tag
// or a project config key. Accepts "default"/"always"/"never" and the
// boolean spellings the doc-tag form also allows (§4.8 "or bool").
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return ModeUnset, true
	case "always":
		return ModeAlways, true
	case "never":
		return ModeNever, true
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		if b {
			return ModeAlways, true
		}
		return ModeNever, true
	}
	return ModeUnset, false
}

// reflectionTagPrefix is the doc-comment tag §4.8 looks for, one per line.
const reflectionTagPrefix = "@reflection"

// DocTagMode scans one node's raw doc-comment text for a `@reflection`
// tag and parses its value. ok is false if the comment carries no tag
// at all; a tag present but unparseable still reports ok=true with
// ModeUnset, since a malformed doc-comment tag degrades silently (§7
// only calls out malformed *project config* for a logged warning).
func DocTagMode(doc string) (Mode, bool) {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, reflectionTagPrefix) {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, reflectionTagPrefix))
		mode, _ := ParseMode(value)
		return mode, true
	}
	return ModeUnset, false
}
