// Package signin authenticates dashboard admins against an identity
// provider and classifies failures into messages fit for the login form.
package signin

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// Identity is what a provider knows about an authenticated admin.
type Identity struct {
	ID    string
	Email string
}

// Provider authenticates an identifier/secret pair. The returned token is
// opaque to callers.
type Provider interface {
	SignIn(ctx context.Context, identifier, secret string) (Identity, string, error)
}

// ProviderError is an authentication error carrying the provider's
// human-readable message.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FailureKind classifies a failed login.
type FailureKind string

const (
	InvalidCredentials  FailureKind = "invalid_credentials"
	UnconfirmedIdentity FailureKind = "unconfirmed_identity"
	RateLimited         FailureKind = "rate_limited"
	ConnectionProblem   FailureKind = "connection_problem"
	Unclassified        FailureKind = "unclassified"
)

// Failure is a classified login failure. Message is shown to the user;
// Err is the provider error, kept for logging.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

// User-facing messages per failure kind. Unclassified failures echo the
// provider message instead.
const (
	MsgInvalidCredentials  = "Invalid email or password. Please try again."
	MsgUnconfirmedIdentity = "Please confirm your email address before signing in."
	MsgRateLimited         = "Too many login attempts. Please wait a few minutes and try again."
	MsgConnectionProblem   = "Unable to reach the sign-in service. Please check your connection and try again."
	msgUnclassifiedPrefix  = "Login failed: "
)

// Login normalizes identifier, asks p to authenticate, and either returns
// the identity to persist or a classified failure.
func Login(ctx context.Context, p Provider, identifier, secret string) (models.AdminIdentity, *Failure) {
	email := normalize.Email(identifier)

	id, _, err := p.SignIn(ctx, email, secret)
	if err != nil {
		return models.AdminIdentity{}, Classify(err)
	}

	if id.Email == "" {
		id.Email = email
	}
	return models.NewAdminIdentity(id.ID, normalize.Email(id.Email), time.Now()), nil
}

// Classify maps a provider error onto the failure taxonomy. Network-level
// errors are checked first so they are never reported as bad credentials.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return &Failure{Kind: ConnectionProblem, Message: MsgConnectionProblem, Err: err}
	}

	raw := err.Error()
	msg := strings.ToLower(raw)
	switch {
	case strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid credentials"):
		return &Failure{Kind: InvalidCredentials, Message: MsgInvalidCredentials, Err: err}
	case strings.Contains(msg, "not confirmed"):
		return &Failure{Kind: UnconfirmedIdentity, Message: MsgUnconfirmedIdentity, Err: err}
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many"):
		return &Failure{Kind: RateLimited, Message: MsgRateLimited, Err: err}
	case strings.Contains(msg, "invalid_grant"):
		// Bare OAuth2 error code with no recognizable description.
		return &Failure{Kind: InvalidCredentials, Message: MsgInvalidCredentials, Err: err}
	}
	return &Failure{Kind: Unclassified, Message: msgUnclassifiedPrefix + raw, Err: err}
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrStoreUnavailable) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
