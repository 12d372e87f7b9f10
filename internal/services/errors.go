package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindExtractionFailure ErrorKind = "extraction_failure"
	KindUpstreamFailure   ErrorKind = "upstream_failure"
	KindInternal          ErrorKind = "internal"
)

const MsgOnlyPDF = "Only PDF files are supported."

// AnalysisError pairs a public message with the cause that produced it.
// Message is safe to show callers; Err is for logs and optional detail.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func invalidInput(message string) *AnalysisError {
	return &AnalysisError{Kind: KindInvalidInput, Message: message}
}

func extractionFailure(err error) *AnalysisError {
	return &AnalysisError{Kind: KindExtractionFailure, Message: "Failed to extract text from PDF", Err: err}
}

func upstreamFailure(err error) *AnalysisError {
	return &AnalysisError{Kind: KindUpstreamFailure, Message: "An error occurred", Err: err}
}

func internalFailure(err error) *AnalysisError {
	return &AnalysisError{Kind: KindInternal, Message: "An error occurred", Err: err}
}

// KindOf classifies any error; unknown errors are internal.
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
