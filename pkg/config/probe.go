package config

import (
	"github.com/tliron/commonlog"
)

// Probe resolves the effective reflection Mode for one carrier node
// (spec §4.8): doc-comment tag, then the transformer's configured
// override, then the nearest ancestor project configuration file,
// defaulting to ModeNever. Project file contents are cached by the
// starting directory passed to Resolve, exactly as given, to avoid
// repeated parses across a run (§5).
type Probe struct {
	// Override is the transformer's `withReflectionMode` setting.
	// ModeUnset means no override was configured.
	Override Mode

	cache map[string]*ProjectFile
}

// NewProbe returns a Probe with no configured override.
func NewProbe() *Probe {
	return &Probe{cache: map[string]*ProjectFile{}}
}

// Resolve implements §4.8's full resolution order for one node. docTags
// is the node's own doc comment followed by each enclosing ancestor's,
// innermost first — the walk a real host compiler's parent-pointer
// traversal would produce. fileDir is the directory of the source file
// the node occurs in, the starting point for the project-file walk.
func (p *Probe) Resolve(docTags []string, fileDir string) Mode {
	for _, doc := range docTags {
		if mode, ok := DocTagMode(doc); ok && mode != ModeUnset {
			return mode
		}
	}
	if p.Override != ModeUnset {
		return p.Override
	}
	if mode, ok := p.projectFileMode(fileDir); ok {
		return mode
	}
	return ModeNever
}

func (p *Probe) projectFileMode(fileDir string) (Mode, bool) {
	f, err := p.findCached(fileDir)
	if err != nil {
		commonlog.NewWarningMessage(0, "config: %s", err.Error())
		return ModeUnset, false
	}
	if f == nil {
		return ModeUnset, false
	}
	mode, ok := ParseMode(f.Reflection)
	if !ok {
		commonlog.NewWarningMessage(0, "config: %s: invalid reflection value %q", f.Dir, f.Reflection)
		return ModeUnset, false
	}
	if mode == ModeUnset {
		return ModeUnset, false
	}
	return mode, true
}

func (p *Probe) findCached(fileDir string) (*ProjectFile, error) {
	if f, ok := p.cache[fileDir]; ok {
		return f, nil
	}
	f, err := findProjectFile(fileDir)
	if err != nil {
		return nil, err
	}
	p.cache[fileDir] = f
	return f, nil
}
