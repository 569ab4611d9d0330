package bout

import (
	"errors"

	"github.com/ronincompetition/ronin/internal/model"
)

// Proposal is the client-side, pre-submission selection state. Nothing
// here has touched the network yet.
type Proposal struct {
	ChallengerID model.AthleteID
	Opponent     *model.Athlete
	Referee      *model.Athlete
	Style        *model.Style
}

var (
	ErrNotAuthenticated  = errors.New("you must be logged in to create a bout")
	ErrMissingOpponent   = errors.New("please select an opponent")
	ErrMissingReferee    = errors.New("please select a referee")
	ErrMissingStyle      = errors.New("please select a style")
	ErrOpponentIsReferee = errors.New("opponent and referee cannot be the same person")
)

// ValidateProposal gates submission. Checks run in the order the user
// sees them and the first failure wins. Anything beyond these rules
// (e.g. whether the challenger actually practices the style) is the
// service's call and surfaces as a submission failure instead.
func ValidateProposal(p Proposal) error {
	switch {
	case p.ChallengerID == 0:
		return ErrNotAuthenticated
	case p.Opponent == nil:
		return ErrMissingOpponent
	case p.Referee == nil:
		return ErrMissingReferee
	case p.Style == nil:
		return ErrMissingStyle
	case p.Opponent.ID == p.Referee.ID:
		return ErrOpponentIsReferee
	}
	return nil
}

// IsValidationError reports whether err is a client-side precondition
// failure that never reached the network.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrMissingOpponent) ||
		errors.Is(err, ErrMissingReferee) ||
		errors.Is(err, ErrMissingStyle) ||
		errors.Is(err, ErrOpponentIsReferee)
}
