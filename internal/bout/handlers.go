package bout

import (
	"context"
	"errors"
	"net/http"

	"github.com/ronincompetition/ronin/internal/auth"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/util"
)

// ProposePayload is what the challenge screen submits: the chosen ids.
// Zero values mean the selection was never made.
type ProposePayload struct {
	AcceptorID model.AthleteID `json:"acceptorId"`
	RefereeID  model.AthleteID `json:"refereeId"`
	StyleID    model.StyleID   `json:"styleId"`
}

// OutcomePayload is the referee's decision for a bout.
type OutcomePayload struct {
	WinnerID model.AthleteID `json:"winnerId"`
	LoserID  model.AthleteID `json:"loserId"`
	StyleID  model.StyleID   `json:"styleId"`
	IsDraw   bool            `json:"isDraw"`
}

func HandleProposeBout(m *Machine) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		var payload ProposePayload
		util.Decode(r, &payload)

		p := Proposal{}
		if viewer, ok := auth.CurrentAthlete(r.Context()); ok {
			p.ChallengerID = viewer
		}
		if payload.AcceptorID != 0 {
			p.Opponent = &model.Athlete{ID: payload.AcceptorID}
		}
		if payload.RefereeID != 0 {
			p.Referee = &model.Athlete{ID: payload.RefereeID}
		}
		if payload.StyleID != 0 {
			p.Style = &model.Style{ID: payload.StyleID}
		}

		created, err := m.Propose(r.Context(), p)
		if err != nil {
			if errors.Is(err, ErrNotAuthenticated) {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return nil
			}
			if IsValidationError(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return nil
			}
			return writeTransitionError(w, err)
		}
		util.Encode(w, http.StatusOK, created)
		return nil
	}
}

// HandlePendingBouts returns the viewer's unaccepted proposals, each
// annotated with the viewer's role and permitted actions.
func HandlePendingBouts(m *Machine) util.Handler {
	return handleList(m.Pending)
}

// HandleIncompleteBouts returns accepted bouts awaiting the referee.
func HandleIncompleteBouts(m *Machine) util.Handler {
	return handleList(m.Incomplete)
}

func handleList(list func(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		bouts, err := list(r.Context(), viewer)
		if err != nil {
			http.Error(w, "could not load bouts, try again", http.StatusServiceUnavailable)
			return nil
		}
		util.Encode(w, http.StatusOK, ViewsFor(viewer, bouts))
		return nil
	}
}

func HandleAcceptBout(m *Machine) util.Handler {
	return handleTransition(m.Accept)
}

func HandleDeclineBout(m *Machine) util.Handler {
	return handleTransition(m.Decline)
}

func HandleCancelBout(m *Machine) util.Handler {
	return handleTransition(m.Cancel)
}

func handleTransition(transition func(ctx context.Context, viewer model.AthleteID, boutID model.BoutID) error) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		id, ok := util.PathInt(r, "id")
		if !ok {
			http.Error(w, "invalid bout id", http.StatusBadRequest)
			return nil
		}
		if err := transition(r.Context(), viewer, model.BoutID(id)); err != nil {
			return writeTransitionError(w, err)
		}
		w.WriteHeader(http.StatusOK)
		return nil
	}
}

func HandleCompleteBout(m *Machine) util.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		viewer, ok := auth.CurrentAthlete(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return nil
		}
		id, ok := util.PathInt(r, "id")
		if !ok {
			http.Error(w, "invalid bout id", http.StatusBadRequest)
			return nil
		}

		var payload OutcomePayload
		util.Decode(r, &payload)
		if payload.WinnerID == 0 || payload.LoserID == 0 {
			http.Error(w, "winner and loser are required", http.StatusBadRequest)
			return nil
		}

		err := m.Complete(r.Context(), viewer, model.BoutID(id), payload.WinnerID, payload.LoserID, payload.StyleID, payload.IsDraw)
		if err != nil {
			return writeTransitionError(w, err)
		}
		w.WriteHeader(http.StatusOK)
		return nil
	}
}

// writeTransitionError maps remote failures to retryable responses. A
// rejected transition usually means another actor resolved the bout
// first; the client refreshes its lists and moves on.
func writeTransitionError(w http.ResponseWriter, err error) error {
	if ronin.Rejected(err) {
		http.Error(w, "the bout changed, refresh and try again", http.StatusConflict)
		return nil
	}
	if errors.Is(err, ronin.ErrUnavailable) {
		http.Error(w, "could not reach the competition service, try again", http.StatusServiceUnavailable)
		return nil
	}
	return err
}
