package google

import (
	"context"
	"fmt"
	"strings"

	verifier "github.com/futurenda/google-auth-id-token-verifier"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/yeyakmania/booking-api/internal/config"
	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/httperr"
)

// OAuth runs the authorization-code flow and verifies the returned ID token.
type OAuth struct {
	config *oauth2.Config

	// verify is swapped in tests; it returns the verified claims.
	verify func(idToken string) (*verifier.ClaimSet, error)
}

var _ account.IdentityProvider = (*OAuth)(nil)

func OAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     googleoauth.Endpoint,
		Scopes: []string{
			"openid",
			"email",
			"profile",
			gcal.CalendarScope,
		},
	}
}

func NewOAuth(oc *oauth2.Config) *OAuth {
	o := &OAuth{config: oc}
	o.verify = func(idToken string) (*verifier.ClaimSet, error) {
		v := verifier.Verifier{}
		if err := v.VerifyIDToken(idToken, []string{oc.ClientID}); err != nil {
			return nil, err
		}
		return verifier.Decode(idToken)
	}
	return o
}

// AuthURL asks for offline access so a refresh token is issued for calendar
// calls made outside the user's session.
func (o *OAuth) AuthURL(state string) string {
	return o.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

func (o *OAuth) Exchange(ctx context.Context, code string) (*account.Identity, error) {
	tok, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	rawID, _ := tok.Extra("id_token").(string)
	if rawID == "" {
		return nil, httperr.Invalid("invalid_id_token")
	}
	claims, err := o.verify(rawID)
	if err != nil {
		return nil, httperr.Invalid("invalid_id_token")
	}

	scope, _ := tok.Extra("scope").(string)

	return &account.Identity{
		Subject:       claims.Sub,
		Email:         claims.Email,
		Name:          claims.Name,
		RefreshToken:  tok.RefreshToken,
		CalendarScope: grantsCalendar(scope),
	}, nil
}

func grantsCalendar(scope string) bool {
	for _, s := range strings.Fields(scope) {
		if s == gcal.CalendarScope || s == gcal.CalendarEventsScope {
			return true
		}
	}
	return false
}
