// Package email delivers one-time login codes to users. Delivery is
// best-effort: the workflow logs failures and never fails the request over
// them.
package email

import "context"

// Sender delivers a one-time plaintext code to the given address.
type Sender interface {
	Send(ctx context.Context, recipient, code string) error
}
