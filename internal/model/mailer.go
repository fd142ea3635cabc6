package model

import "context"

// Mailer delivers outbound mail. Any returned error means the message may
// not have reached the recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
