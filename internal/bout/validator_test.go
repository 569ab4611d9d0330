package bout

import (
	"errors"
	"testing"

	"github.com/ronincompetition/ronin/internal/model"
)

func athlete(id model.AthleteID) *model.Athlete {
	return &model.Athlete{ID: id}
}

func style(id model.StyleID) *model.Style {
	return &model.Style{ID: id, Name: "Judo"}
}

func TestValidateProposal(t *testing.T) {
	validateTests := []struct {
		name     string
		proposal Proposal
		want     error
	}{
		{
			"complete proposal",
			Proposal{ChallengerID: 1, Opponent: athlete(2), Referee: athlete(3), Style: style(4)},
			nil,
		},
		{
			"no session",
			Proposal{Opponent: athlete(2), Referee: athlete(3), Style: style(4)},
			ErrNotAuthenticated,
		},
		{
			"no opponent",
			Proposal{ChallengerID: 1, Referee: athlete(3), Style: style(4)},
			ErrMissingOpponent,
		},
		{
			"no referee",
			Proposal{ChallengerID: 1, Opponent: athlete(2), Style: style(4)},
			ErrMissingReferee,
		},
		{
			"no style",
			Proposal{ChallengerID: 1, Opponent: athlete(2), Referee: athlete(3)},
			ErrMissingStyle,
		},
		{
			"opponent is referee",
			Proposal{ChallengerID: 1, Opponent: athlete(42), Referee: athlete(42), Style: style(4)},
			ErrOpponentIsReferee,
		},
		{
			// First failure wins: the missing session is reported even
			// though the participant selection is also wrong.
			"session check precedes participant checks",
			Proposal{Opponent: athlete(42), Referee: athlete(42)},
			ErrNotAuthenticated,
		},
		{
			"opponent check precedes referee check",
			Proposal{ChallengerID: 1},
			ErrMissingOpponent,
		},
	}

	for _, tt := range validateTests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProposal(tt.proposal)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrOpponentIsReferee) {
		t.Error("expected ErrOpponentIsReferee to be a validation error")
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("expected arbitrary error to not be a validation error")
	}
}
