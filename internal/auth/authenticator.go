package auth

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Authenticator registers accounts and verifies credentials.
// Password auth is the only implementation; the interface keeps the service layer
// independent of how credentials are checked.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks that a credential is acceptable before it is stored.
	ValidateCredential(credential string) error
}
