package errors

import "time"

// Reporter normalizes errors surfaced at the edge of the application and logs them
// with their code and category.
type Reporter struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewReporter(logger Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report logs err and returns its StandardError form.
func (r *Reporter) Report(msg string, err error, fields map[string]interface{}) *StandardError {
	stdErr := normalizeError(err)

	entry := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range fields {
		entry[k] = v
	}
	r.logger.Error(msg, entry)

	return stdErr
}

// normalizeError ensures we always have a StandardError
func normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
