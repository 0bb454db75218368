package constants

import "net/http"

// CodedError carries the HTTP status the API error handler should answer
// with. Services wrap these sentinels with fmt.Errorf("...: %w", err) so
// the handler can find them with errors.Unwrap.
type CodedError struct {
	message string
	code    int
}

func NewCodedError(message string, code int) *CodedError {
	return &CodedError{message: message, code: code}
}

func (e *CodedError) Error() string { return e.message }

func (e *CodedError) Code() int { return e.code }

var (
	ErrEmptyQuery  = NewCodedError("request must include a non-empty 'question' or 'message'", http.StatusBadRequest)
	ErrInvalidBody = NewCodedError("invalid request body", http.StatusBadRequest)

	ErrDBNotFound = NewCodedError("not found", http.StatusNotFound)

	ErrSourceUnavailable = NewCodedError("data source unavailable", http.StatusBadGateway)
	ErrUpstreamMalformed = NewCodedError("unexpected upstream payload", http.StatusBadGateway)
)
