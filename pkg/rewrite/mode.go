package rewrite

import (
	"github.com/timvandam/deepkit-framework/pkg/config"
	"github.com/timvandam/deepkit-framework/pkg/hosttype"
	"github.com/timvandam/deepkit-framework/pkg/walk"
)

// MaybeClassAttachment gates ClassAttachment behind the Configuration
// Probe (§4.8): in ModeNever the carrier is left untouched and this
// returns (nil, nil), exactly "the walker returns immediately,
// emitting no payload".
func MaybeClassAttachment(probe *config.Probe, docTags []string, fileDir string, w *walk.Walker, d *hosttype.ClassDeclaration) (*Attachment, error) {
	if probe.Resolve(docTags, fileDir) == config.ModeNever {
		return nil, nil
	}
	att, err := ClassAttachment(w, d)
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// MaybeFunctionAttachment is MaybeClassAttachment's counterpart for a
// function declaration, expression, or arrow.
func MaybeFunctionAttachment(probe *config.Probe, docTags []string, fileDir string, w *walk.Walker, d *hosttype.FunctionLike) (*Attachment, error) {
	if probe.Resolve(docTags, fileDir) == config.ModeNever {
		return nil, nil
	}
	att, err := AttachmentFor(w, d)
	if err != nil {
		return nil, err
	}
	return &att, nil
}
