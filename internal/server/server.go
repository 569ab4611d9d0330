package server

import (
	"net/http"

	"github.com/ronincompetition/ronin/internal/bout"
	"github.com/ronincompetition/ronin/internal/cache"
	"github.com/ronincompetition/ronin/internal/directory"
	"github.com/ronincompetition/ronin/internal/feed"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/styles"
	"github.com/ronincompetition/ronin/internal/util"
	"github.com/ronincompetition/ronin/internal/util/logs"
)

// Authenticator is the session boundary: it owns login and token
// verification and places the athlete identity on the request context.
type Authenticator interface {
	HandleBeginAuth() util.Handler
	HandleAuthCallback() util.Handler
	Middleware(h util.Handler) util.Handler
}

// NewServer assembles the client core over the remote competition
// service: directory and style lookups, the bout lifecycle machine,
// and the feed projection, all behind the session middleware.
func NewServer(auth Authenticator, api ronin.Client, c cache.Repository) http.Handler {
	d := directory.NewDirectory(api, c)
	st := styles.NewService(api)
	m := bout.NewMachine(api, c)
	f := feed.NewAssembler(api)

	mux := http.NewServeMux()
	addRoutes(mux, auth, api, d, st, m, f)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logs.WithRequestLogger(r)
		mux.ServeHTTP(w, r.WithContext(ctx))
	})
}
