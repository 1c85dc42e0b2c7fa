package apperror

// AppError carries the HTTP status a failure should surface as, together
// with a user-facing message. The wrapped error, if any, stays internal.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError around an existing error. errors.Is matches the
// wrapped error, so a sentinel AppError can be rewrapped with a more specific
// message without losing identity.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
