package internal

import "github.com/google/uuid"

// NewAttemptID returns a fresh identifier for one authentication attempt.
// The ID ties together the audit events emitted between BeginAuthentication
// and the next LockVault or CancelAuthentication.
func NewAttemptID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
