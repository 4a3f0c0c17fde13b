package ports

import "context"

// EmailVerifier wraps the external mailbox-validity check used as a
// pre-submission gate. Accepted only when the upstream result is
// exactly "valid"; any other result code is a rejection carrying that
// code as the reason. A transport failure is an error (fail-closed).
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (accepted bool, reason string, err error)
}
