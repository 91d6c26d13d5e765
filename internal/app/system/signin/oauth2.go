package signin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuth2 authenticates against a remote identity provider using the
// resource owner password grant.
//
// The provider is expected to return the signed-in user alongside the
// token as a "user" object with "id" and "email" members.
type OAuth2 struct {
	cfg    *oauth2.Config
	client *http.Client
}

// NewOAuth2 creates a remote provider. client may be nil.
func NewOAuth2(tokenURL, clientID, clientSecret string, client *http.Client) *OAuth2 {
	return &OAuth2{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
	}
}

// SignIn implements Provider.
func (p *OAuth2) SignIn(ctx context.Context, identifier, secret string) (Identity, string, error) {
	if p.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	}

	tok, err := p.cfg.PasswordCredentialsToken(ctx, identifier, secret)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return Identity{}, "", &ProviderError{Provider: "oauth2", Message: retrieveMessage(re), Err: err}
		}
		return Identity{}, "", err
	}

	id := Identity{Email: identifier}
	if user, ok := tok.Extra("user").(map[string]any); ok {
		if v, ok := user["id"].(string); ok {
			id.ID = v
		}
		if v, ok := user["email"].(string); ok && v != "" {
			id.Email = v
		}
	}
	if id.ID == "" {
		if sub, ok := tok.Extra("sub").(string); ok {
			id.ID = sub
		}
	}
	return id, tok.AccessToken, nil
}

// retrieveMessage prefers the provider's own description over the library's
// formatted error.
func retrieveMessage(re *oauth2.RetrieveError) string {
	switch {
	case re.ErrorDescription != "" && re.ErrorCode != "":
		return fmt.Sprintf("%s: %s", re.ErrorCode, re.ErrorDescription)
	case re.ErrorDescription != "":
		return re.ErrorDescription
	case re.ErrorCode != "":
		return re.ErrorCode
	}
	if re.Response != nil {
		return fmt.Sprintf("identity provider returned %s", re.Response.Status)
	}
	return re.Error()
}
