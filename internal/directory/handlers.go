package directory

import (
	"errors"
	"net/http"

	"github.com/ronincompetition/ronin/internal/auth"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/util"
	"github.com/ronincompetition/ronin/internal/util/logs"
)

// HandleListAthletes returns the full roster. A directory outage
// renders as an empty roster so the screen never crashes.
func HandleListAthletes(d *Directory) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		roster, err := d.List(r.Context())
		if err != nil {
			logs.Logger(r.Context()).Warn("listing athletes", "error", err)
			util.Encode(w, http.StatusOK, []model.Athlete{})
			return nil
		}
		util.Encode(w, http.StatusOK, roster)
		return nil
	}
}

// HandleSearchAthletes filters the roster by the q parameter. The
// session athlete is always excluded; an optional exclude parameter
// additionally drops an already-chosen participant.
func HandleSearchAthletes(d *Directory) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}

		exclude := []model.AthleteID{viewer}
		if v, ok := util.QueryInt(r, "exclude"); ok {
			exclude = append(exclude, model.AthleteID(v))
		}

		matches, err := d.Search(r.Context(), r.URL.Query().Get("q"), exclude...)
		if err != nil {
			logs.Logger(r.Context()).Warn("searching athletes", "error", err)
			util.Encode(w, http.StatusOK, []model.Athlete{})
			return nil
		}
		util.Encode(w, http.StatusOK, matches)
		return nil
	}
}

// HandleGetRecord returns an athlete's lifetime win/loss/draw tally.
func HandleGetRecord(api API) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, ok := util.PathInt(r, "id")
		if !ok {
			http.Error(w, "invalid athlete id", http.StatusBadRequest)
			return nil
		}
		record, err := api.Record(r.Context(), model.AthleteID(id))
		if err != nil {
			return writeRemoteError(w, err)
		}
		util.Encode(w, http.StatusOK, record)
		return nil
	}
}

// HandleScoreHistory returns an athlete's per-style rating history.
func HandleScoreHistory(api API) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, ok := util.PathInt(r, "id")
		if !ok {
			http.Error(w, "invalid athlete id", http.StatusBadRequest)
			return nil
		}
		scores, err := api.ScoreHistory(r.Context(), model.AthleteID(id))
		if err != nil {
			return writeRemoteError(w, err)
		}
		util.Encode(w, http.StatusOK, scores)
		return nil
	}
}

func writeRemoteError(w http.ResponseWriter, err error) error {
	if errors.Is(err, ronin.ErrUnavailable) {
		http.Error(w, "could not reach the competition service, try again", http.StatusServiceUnavailable)
		return nil
	}
	if ronin.Rejected(err) {
		http.Error(w, "the competition service rejected the request", http.StatusBadGateway)
		return nil
	}
	return err
}
