package domain

import "context"

// Mailer is the outbound email collaborator. Send returns an error when the
// transport signals a delivery failure; callers surface it as a dependency
// error, distinct from validation failures.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}
