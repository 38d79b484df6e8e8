// Package relay defines the abstraction over form-relay services: external
// collaborators that accept a signup and forward it to the site owner.
package relay

import "context"

// Submission is the payload forwarded to a relay.
type Submission struct {
	// Email is the address the visitor entered.
	Email string
	// Subject is the subject line the relay uses when forwarding the signup.
	Subject string
}

// Client forwards signups to a form-relay service.
//
//go:generate mockgen -package mockrelay -source=interface.go -destination=mock/mockrelay.go *
type Client interface {
	// Submit issues exactly one request for sub. It returns nil only when the
	// relay accepted the submission.
	Submit(ctx context.Context, sub Submission) error
}
