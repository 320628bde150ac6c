package pipeline

// Kind names the error taxonomy from §7, used both for structured logging
// and for bucketing the end-of-run summary by failure reason.
type Kind string

const (
	KindIngestionError        Kind = "IngestionError"
	KindPatternBuildError     Kind = "PatternBuildError"
	KindScannerDegradedError  Kind = "ScannerDegradedError"
	KindParseError            Kind = "ParseError"
	KindRewriteConflict       Kind = "RewriteConflict"
	KindWriteError            Kind = "WriteError"
	KindTimeout               Kind = "Timeout"
	KindQueueBackpressureDrop Kind = "QueueBackpressureDrop"
	KindProcessingError       Kind = "ProcessingError"
)

// Error wraps an underlying cause with the taxonomy Kind it belongs to, so
// Run's summary can bucket failures without string-matching error text.
type Error struct {
	Kind    Kind
	SourceID string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.SourceID
	}
	return string(e.Kind) + ": " + e.SourceID + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the taxonomy Kind from err, defaulting to
// KindProcessingError for an error that did not originate as a
// pipeline.Error (e.g. a bare error returned by a caller's Process func).
func KindOf(err error) Kind {
	var pe *Error
	if ok := asError(err, &pe); ok {
		return pe.Kind
	}
	return KindProcessingError
}

func asError(err error, target **Error) bool {
	for err != nil {
		if pe, ok := err.(*Error); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
