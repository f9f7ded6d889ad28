package models

// ResponseMode is the terminal outcome of one pass through the answer
// pipeline.
type ResponseMode string

const (
	// ModeGenericOnly: the message was a greeting or small talk, no
	// knowledge lookup was performed.
	ModeGenericOnly ResponseMode = "GENERIC_ONLY"
	// ModeLowConfidence: no stored entry matched the message closely
	// enough to be usable.
	ModeLowConfidence ResponseMode = "LOW_CONFIDENCE"
	// ModeDenied: the best match is tagged for a different profile.
	ModeDenied ResponseMode = "DENIED"
	// ModeDisclose: the best match is authorized for the requester.
	ModeDisclose ResponseMode = "DISCLOSE"
)

// Decision is the transient result of a single query. Answer and Domain
// are populated only when Mode is ModeDisclose; the denied branch must
// never carry gated content out of the pipeline.
type Decision struct {
	Mode       ResponseMode
	Answer     string
	Domain     string
	Similarity float64
}
