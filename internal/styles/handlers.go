package styles

import (
	"net/http"

	"github.com/ronincompetition/ronin/internal/auth"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/util"
)

func HandleListStyles(s *Service) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		styles, err := s.All(r.Context())
		if err != nil {
			http.Error(w, "could not load styles, try again", http.StatusServiceUnavailable)
			return nil
		}
		util.Encode(w, http.StatusOK, styles)
		return nil
	}
}

// HandleCommonStyles returns the styles the session athlete shares
// with a chosen opponent. An empty list means no overlap; the proposal
// screen shows "no styles in common" and stays usable.
func HandleCommonStyles(s *Service) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		opponentID, ok := util.PathInt(r, "opponentId")
		if !ok {
			http.Error(w, "invalid opponent id", http.StatusBadRequest)
			return nil
		}

		styles, err := s.Common(r.Context(), model.AthleteID(opponentID), viewer)
		if err != nil {
			http.Error(w, "could not load common styles, try again", http.StatusServiceUnavailable)
			return nil
		}
		util.Encode(w, http.StatusOK, styles)
		return nil
	}
}
