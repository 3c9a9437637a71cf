package ports

import "context"

// LoginThrottle caps failed login attempts per email within a rolling
// window. Implementations must be safe for concurrent use; a nil throttle
// disables the mechanism entirely.
type LoginThrottle interface {
	// TooMany reports whether the email has exhausted its attempt budget.
	TooMany(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
