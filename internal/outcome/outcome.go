package outcome

import (
	"errors"
	"fmt"

	"github.com/ronincompetition/ronin/internal/model"
)

var (
	// ErrNotResolved means the bout has no recorded decision yet and
	// has nothing to project.
	ErrNotResolved = errors.New("bout is not resolved")

	// ErrUnknownParticipant is a data-integrity failure: the recorded
	// winner or loser is neither the challenger nor the acceptor. Such
	// records are reported and excluded, never silently defaulted.
	ErrUnknownParticipant = errors.New("resolved bout references an unknown participant")
)

// Outcome is the display-ready projection of a resolved bout. For a
// draw the name fields stay empty and both deltas are still credited.
type Outcome struct {
	WinnerName      string `json:"winner,omitempty"`
	LoserName       string `json:"loser,omitempty"`
	IsDraw          bool   `json:"isDraw"`
	ChallengerDelta int    `json:"challengerScoreChange"`
	AcceptorDelta   int    `json:"acceptorScoreChange"`
}

// Project derives the outcome of a completed bout. The score delta for
// a participant is winnerScore when that participant matches winnerId,
// loserScore otherwise; the same rule credits both sides of a draw.
func Project(b model.Bout) (*Outcome, error) {
	if !b.Completed {
		return nil, fmt.Errorf("%w: bout %d", ErrNotResolved, b.ID)
	}
	if b.WinnerID == nil || b.LoserID == nil || b.WinnerScore == nil || b.LoserScore == nil {
		return nil, fmt.Errorf("%w: bout %d is missing result fields", ErrNotResolved, b.ID)
	}

	if *b.WinnerID != b.ChallengerID && *b.WinnerID != b.AcceptorID {
		return nil, fmt.Errorf("%w: bout %d winner %d", ErrUnknownParticipant, b.ID, *b.WinnerID)
	}
	if *b.LoserID != b.ChallengerID && *b.LoserID != b.AcceptorID {
		return nil, fmt.Errorf("%w: bout %d loser %d", ErrUnknownParticipant, b.ID, *b.LoserID)
	}

	challengerDelta := *b.LoserScore
	acceptorDelta := *b.LoserScore
	if *b.WinnerID == b.ChallengerID {
		challengerDelta = *b.WinnerScore
	}
	if *b.WinnerID == b.AcceptorID {
		acceptorDelta = *b.WinnerScore
	}

	out := &Outcome{
		IsDraw:          b.IsDraw,
		ChallengerDelta: challengerDelta,
		AcceptorDelta:   acceptorDelta,
	}

	// The draw flag takes precedence over the nominal winner/loser
	// assignment: no winner is named even though the ids are populated.
	if !b.IsDraw {
		if *b.WinnerID == b.ChallengerID {
			out.WinnerName = b.ChallengerName()
			out.LoserName = b.AcceptorName()
		} else {
			out.WinnerName = b.AcceptorName()
			out.LoserName = b.ChallengerName()
		}
	}

	return out, nil
}
