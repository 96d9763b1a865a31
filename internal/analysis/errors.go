package analysis

import "fmt"

// AnalysisError reports a table shape on which a statistic is undefined.
type AnalysisError struct {
	Op     string
	Reason string
}

func (e *AnalysisError) Error() string {
	if e == nil {
		return "analysis error"
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func errorf(op, format string, args ...any) *AnalysisError {
	return &AnalysisError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
