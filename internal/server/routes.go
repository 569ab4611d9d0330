package server

import (
	"net/http"

	"github.com/ronincompetition/ronin/internal/bout"
	"github.com/ronincompetition/ronin/internal/directory"
	"github.com/ronincompetition/ronin/internal/feed"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/styles"
)

func addRoutes(
	mux *http.ServeMux,
	auth Authenticator,
	api ronin.Client,
	d *directory.Directory,
	st *styles.Service,
	m *bout.Machine,
	f *feed.Assembler,
) {
	mux.Handle("/login", auth.HandleBeginAuth())
	mux.Handle("/auth/google/callback", auth.HandleAuthCallback())

	mux.Handle("GET /athletes", auth.Middleware(directory.HandleListAthletes(d)))
	mux.Handle("GET /athletes/search", auth.Middleware(directory.HandleSearchAthletes(d)))
	mux.Handle("GET /athlete/{id}/record", auth.Middleware(directory.HandleGetRecord(api)))
	mux.Handle("GET /athlete/{id}/scores", auth.Middleware(directory.HandleScoreHistory(api)))

	mux.Handle("GET /styles", auth.Middleware(styles.HandleListStyles(st)))
	mux.Handle("GET /styles/common/{opponentId}", auth.Middleware(styles.HandleCommonStyles(st)))

	mux.Handle("GET /bouts/pending", auth.Middleware(bout.HandlePendingBouts(m)))
	mux.Handle("GET /bouts/incomplete", auth.Middleware(bout.HandleIncompleteBouts(m)))
	mux.Handle("POST /bout", auth.Middleware(bout.HandleProposeBout(m)))
	mux.Handle("PUT /bout/{id}/accept", auth.Middleware(bout.HandleAcceptBout(m)))
	mux.Handle("PUT /bout/{id}/decline", auth.Middleware(bout.HandleDeclineBout(m)))
	mux.Handle("PUT /bout/{id}/cancel", auth.Middleware(bout.HandleCancelBout(m)))
	mux.Handle("POST /bout/{id}/outcome", auth.Middleware(bout.HandleCompleteBout(m)))

	mux.Handle("GET /feed", auth.Middleware(feed.HandleGetFeed(f)))

	mux.Handle("/", http.NotFoundHandler())
}
