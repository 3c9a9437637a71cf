package domain

// ErrorKind is the closed enumeration of failure categories. The transport
// layer maps kinds to HTTP status codes; nothing below the boundary knows
// about status codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindRateLimited
	KindInternal
)

// Error is a tagged domain failure: a machine-readable kind, a human
// message, and (for validation) the full batched list of violated rules.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string
}

func (e *Error) Error() string { return e.Message }

// NewValidation batches every violated rule into a single failure.
// Validation is never fail-fast: callers pass the complete list.
func NewValidation(fields []string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// Internal wraps an unexpected failure. The original error is logged at the
// boundary; the client only ever sees the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return KindInternal
}

var (
	// ErrInvalidCredentials is deliberately identical for an unknown email
	// and a wrong password so login failures leak nothing.
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid email or password."}

	ErrAuthRequired   = &Error{Kind: KindUnauthenticated, Message: "Authentication required."}
	ErrSessionExpired = &Error{Kind: KindUnauthenticated, Message: "Session expired. Please log in again."}
	ErrInvalidToken   = &Error{Kind: KindUnauthenticated, Message: "Invalid token."}

	ErrForbidden   = &Error{Kind: KindForbidden, Message: "Forbidden: insufficient role"}
	ErrBadSetupKey = &Error{Kind: KindForbidden, Message: "Invalid setup key for superadmin creation."}

	ErrAccountNotFound = &Error{Kind: KindNotFound, Message: "Account not found."}

	ErrEmailTaken   = &Error{Kind: KindConflict, Message: "An account with this email already exists."}
	ErrLicenseTaken = &Error{Kind: KindConflict, Message: "A doctor with this license ID already exists."}

	ErrWrongPassword = &Error{Kind: KindValidation, Message: "Current password is incorrect."}

	ErrTooManyAttempts = &Error{Kind: KindRateLimited, Message: "Too many failed login attempts. Try again later."}
)
