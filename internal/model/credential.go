package model

import "context"

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hashed string) (bool, error)
}

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}
