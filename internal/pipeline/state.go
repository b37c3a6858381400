package pipeline

import "github.com/docsieve/docsieve/internal/extractor"

// Tone classifies a status message for presentation.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Status is the last-known outcome of an extraction attempt.
type Status struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
}

// State is the owned record of the pipeline's observable condition. The
// presentation layer only renders snapshots of it; all changes go through
// the pure transition functions below, which return a new State.
type State struct {
	RawText  string
	Artifact *extractor.Artifact
	Status   Status
	Busy     bool
}

// startProcessing records a new in-flight extraction over rawText. The
// previous artifact stays visible until the run completes.
func (s State) startProcessing(rawText string) State {
	return State{
		RawText:  rawText,
		Artifact: s.Artifact,
		Status:   Status{Tone: ToneInfo, Message: "Processing document text."},
		Busy:     true,
	}
}

// completeWithRemote records a successful remote extraction.
func (s State) completeWithRemote(a extractor.Artifact, status Status) State {
	return State{RawText: s.RawText, Artifact: &a, Status: status, Busy: false}
}

// completeWithFallback records a local extraction after the remote path was
// unavailable or failed.
func (s State) completeWithFallback(a extractor.Artifact, status Status) State {
	return State{RawText: s.RawText, Artifact: &a, Status: status, Busy: false}
}

// abort records a run that produced no artifact.
func (s State) abort(status Status) State {
	return State{RawText: s.RawText, Artifact: s.Artifact, Status: status, Busy: false}
}

// withRawText records an edit to the document text.
func (s State) withRawText(rawText string) State {
	return State{RawText: rawText, Artifact: s.Artifact, Status: s.Status, Busy: s.Busy}
}
