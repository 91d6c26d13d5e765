package signin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

type fakeProvider struct {
	gotIdentifier string
	gotSecret     string
	identity      Identity
	err           error
}

func (f *fakeProvider) SignIn(_ context.Context, identifier, secret string) (Identity, string, error) {
	f.gotIdentifier = identifier
	f.gotSecret = secret
	if f.err != nil {
		return Identity{}, "", f.err
	}
	return f.identity, "token", nil
}

func TestLogin_NormalizesIdentifier(t *testing.T) {
	p := &fakeProvider{identity: Identity{ID: "abc123", Email: "admin@example.com"}}

	got, fail := Login(context.Background(), p, "Admin@Example.com ", "s3cret")
	if fail != nil {
		t.Fatalf("Login() failure = %v", fail)
	}
	if p.gotIdentifier != "admin@example.com" {
		t.Errorf("provider received %q, want admin@example.com", p.gotIdentifier)
	}
	if p.gotSecret != "s3cret" {
		t.Errorf("provider received secret %q", p.gotSecret)
	}
	if got.Username != got.Email {
		t.Errorf("Username = %q, want equal to Email %q", got.Username, got.Email)
	}
	if got.ID != "abc123" || got.Email != "admin@example.com" {
		t.Errorf("identity = %+v", got)
	}
	if got.LastLoginAt.IsZero() {
		t.Error("LastLoginAt should be set")
	}
}

func TestLogin_EmailDefaultsToIdentifier(t *testing.T) {
	p := &fakeProvider{identity: Identity{ID: "x"}}
	got, fail := Login(context.Background(), p, " Someone@Example.org", "pw")
	if fail != nil {
		t.Fatalf("Login() failure = %v", fail)
	}
	if got.Email != "someone@example.org" || got.Username != "someone@example.org" {
		t.Errorf("identity = %+v", got)
	}
}

func TestLogin_Failure(t *testing.T) {
	p := &fakeProvider{err: &ProviderError{Message: "Invalid login credentials"}}
	got, fail := Login(context.Background(), p, "a@b.c", "bad")
	if fail == nil {
		t.Fatal("expected failure")
	}
	if fail.Kind != InvalidCredentials {
		t.Errorf("Kind = %q, want invalid_credentials", fail.Kind)
	}
	if got.Email != "" {
		t.Errorf("identity should be empty on failure, got %+v", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    FailureKind
		wantMsg string
	}{
		{"invalid login credentials", &ProviderError{Message: "Invalid login credentials"}, InvalidCredentials, MsgInvalidCredentials},
		{"invalid credentials lower", errors.New("invalid credentials"), InvalidCredentials, MsgInvalidCredentials},
		{"oauth2 invalid_grant", errors.New(`oauth2: "invalid_grant"`), InvalidCredentials, MsgInvalidCredentials},
		{"invalid_grant with unconfirmed description", errors.New("invalid_grant: Email not confirmed"), UnconfirmedIdentity, MsgUnconfirmedIdentity},
		{"email not confirmed", &ProviderError{Message: "Email not confirmed"}, UnconfirmedIdentity, MsgUnconfirmedIdentity},
		{"too many requests", &ProviderError{Message: "Too many requests"}, RateLimited, MsgRateLimited},
		{"rate limit", errors.New("Rate limit exceeded"), RateLimited, MsgRateLimited},
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ConnectionProblem, MsgConnectionProblem},
		{"url error", &url.Error{Op: "Post", URL: "https://id.example.com/token", Err: errors.New("EOF")}, ConnectionProblem, MsgConnectionProblem},
		{"deadline", fmt.Errorf("sign in: %w", context.DeadlineExceeded), ConnectionProblem, MsgConnectionProblem},
		{"dns", &net.DNSError{Err: "no such host", Name: "id.example.com"}, ConnectionProblem, MsgConnectionProblem},
		{"unknown", errors.New("User is banned"), Unclassified, "Login failed: User is banned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.want)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
			if !errors.Is(got.Err, tt.err) {
				t.Error("Failure should keep the provider error")
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassify_MessagesDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range []string{MsgInvalidCredentials, MsgUnconfirmedIdentity, MsgRateLimited, MsgConnectionProblem} {
		if seen[m] {
			t.Errorf("duplicate message %q", m)
		}
		seen[m] = true
	}
}
