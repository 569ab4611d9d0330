package feed

import (
	"net/http"

	"github.com/ronincompetition/ronin/internal/auth"
	"github.com/ronincompetition/ronin/internal/util"
)

// HandleGetFeed returns the viewer's feed of resolved bouts. A fetch
// failure is a 503 so the UI can distinguish "could not load" from an
// empty feed.
func HandleGetFeed(a *Assembler) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		entries, err := a.Fetch(r.Context(), viewer)
		if err != nil {
			http.Error(w, "could not load the feed, try again", http.StatusServiceUnavailable)
			return nil
		}
		util.Encode(w, http.StatusOK, entries)
		return nil
	}
}
