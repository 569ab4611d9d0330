package auth

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/ronincompetition/ronin/internal/model"
	"golang.org/x/oauth2"
)

// Session is the identity extracted once at the login boundary. The
// core only ever sees the opaque AthleteID; everything downstream is a
// plain identifier comparison.
type Session struct {
	AthleteID model.AthleteID `json:"athlete_id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
}

type contextKey string

const sessionKey contextKey = "session"

// CurrentAthlete returns the logged-in athlete id from the request
// context, if any.
func CurrentAthlete(ctx context.Context) (model.AthleteID, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	if !ok {
		return 0, false
	}
	return session.AthleteID, true
}

func withSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

type Auth struct {
	provider      *oidc.Provider
	config        oauth2.Config
	tokenVerifier *oidc.IDTokenVerifier
}

func NewAuth(ctx context.Context, issuer, clientId, clientSecret, redirectURL string) (*Auth, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	oidcConfig := &oidc.Config{
		ClientID: clientId,
	}
	verifier := provider.Verifier(oidcConfig)
	config := oauth2.Config{
		ClientID:     clientId,
		ClientSecret: clientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	return &Auth{provider, config, verifier}, nil
}
