// Package diagnostics publishes the warn-worthy conditions of §7 (a
// malformed project config, an aborted compile) as LSP diagnostics,
// adapted from the teacher's publishDiagnostics in server/lsp.go.
package diagnostics

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/timvandam/deepkit-framework/pkg/program"
)

const source = "deepkit-framework"

// Publisher sends PublishDiagnosticsParams notifications for one
// document URI at a time, same shape as the teacher's
// LspServer.publishDiagnostics.
type Publisher struct{}

// NewPublisher returns a Publisher ready to use.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Fault reports a program.Fault (an invariant violation the compiler
// cannot recover from: a missing coroutine on close, a missing frame
// on pop, a pack overflow). Per §7/§8, the host must return the source
// tree unchanged when this happens — this only surfaces it to the
// editor, it never mutates anything.
func (p *Publisher) Fault(ctx *glsp.Context, uri protocol.DocumentUri, fault *program.Fault) {
	if fault == nil {
		p.Clear(ctx, uri)
		return
	}
	commonlog.NewErrorMessage(0, "diagnostics: %s", fault.Error())
	p.notify(ctx, uri, []protocol.Diagnostic{diagnostic(protocol.DiagnosticSeverityError, fault.Error())})
}

// ConfigWarning reports a malformed ancestor project-config file (§4.8,
// §7): logged as a warning, not treated as a fatal compile error, since
// the Configuration Probe already degrades to its next fallback.
func (p *Publisher) ConfigWarning(ctx *glsp.Context, uri protocol.DocumentUri, message string) {
	commonlog.NewWarningMessage(0, "diagnostics: %s", message)
	p.notify(ctx, uri, []protocol.Diagnostic{diagnostic(protocol.DiagnosticSeverityWarning, message)})
}

// Clear publishes an empty diagnostics list for uri, same as the
// teacher's textDocumentDidOpen call into publishDiagnostics with a
// nil compile error.
func (p *Publisher) Clear(ctx *glsp.Context, uri protocol.DocumentUri) {
	p.notify(ctx, uri, []protocol.Diagnostic{})
}

func (p *Publisher) notify(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func diagnostic(severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	sev := severity
	src := source
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 0},
		},
		Severity: &sev,
		Source:   &src,
		Message:  message,
	}
}
