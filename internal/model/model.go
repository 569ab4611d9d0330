package model

// AthleteID is the opaque identifier the remote service assigns to an
// athlete. It is the only form of identity the client compares against;
// session bootstrap extracts it once at the boundary.
type AthleteID int64

type StyleID int64

type BoutID int64

type Athlete struct {
	ID        AthleteID `json:"athlete_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func (a Athlete) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Style is a sparring discipline. The athlete/style relation is owned
// by the remote service and only ever queried here.
type Style struct {
	ID   StyleID `json:"styleId"`
	Name string  `json:"name"`
}

// Bout is the server-owned challenge record. The client never mutates
// these fields locally; every transition is a remote call followed by a
// re-fetch of the affected lists.
type Bout struct {
	ID           BoutID    `json:"boutId"`
	ChallengerID AthleteID `json:"challengerId"`
	AcceptorID   AthleteID `json:"acceptorId"`
	RefereeID    AthleteID `json:"refereeId"`
	StyleID      StyleID   `json:"styleId"`

	Accepted  bool `json:"accepted"`
	Completed bool `json:"completed"`
	Cancelled bool `json:"cancelled"`
	Declined  bool `json:"declined,omitempty"`

	WinnerID *AthleteID `json:"winnerId,omitempty"`
	LoserID  *AthleteID `json:"loserId,omitempty"`
	IsDraw   bool       `json:"isDraw,omitempty"`

	// Current ratings of the participants, shown in the pending lists.
	ChallengerScore int `json:"challengerScore"`
	AcceptorScore   int `json:"acceptorScore"`

	// Set once the referee has resolved the bout.
	WinnerScore *int `json:"winnerScore,omitempty"`
	LoserScore  *int `json:"loserScore,omitempty"`

	// Denormalized by the service for display.
	ChallengerFirstName string `json:"challengerFirstName"`
	ChallengerLastName  string `json:"challengerLastName"`
	AcceptorFirstName   string `json:"acceptorFirstName"`
	AcceptorLastName    string `json:"acceptorLastName"`
	RefereeFirstName    string `json:"refereeFirstName"`
	RefereeLastName     string `json:"refereeLastName"`
	StyleName           string `json:"style"`
}

type State string

const (
	StateProposed       State = "proposed"
	StateAwaitingResult State = "awaiting_result"
	StateCompleted      State = "completed"
	StateCancelled      State = "cancelled"
	StateDeclined       State = "declined"
)

// State derives the single lifecycle state from the bout flags.
// Terminal flags win over accepted, so a record that raced two actors
// still maps to exactly one state.
func (b Bout) State() State {
	switch {
	case b.Cancelled:
		return StateCancelled
	case b.Declined:
		return StateDeclined
	case b.Completed:
		return StateCompleted
	case b.Accepted:
		return StateAwaitingResult
	default:
		return StateProposed
	}
}

func (b Bout) IsTerminal() bool {
	s := b.State()
	return s == StateCompleted || s == StateCancelled || s == StateDeclined
}

func (b Bout) ChallengerName() string {
	return b.ChallengerFirstName + " " + b.ChallengerLastName
}

func (b Bout) AcceptorName() string {
	return b.AcceptorFirstName + " " + b.AcceptorLastName
}

type Role string

const (
	RoleChallenger Role = "challenger"
	RoleAcceptor   Role = "acceptor"
	RoleReferee    Role = "referee"
	RoleSpectator  Role = "spectator"
)

// RoleOf places an athlete in a bout by identifier comparison only.
func (b Bout) RoleOf(id AthleteID) Role {
	switch id {
	case b.ChallengerID:
		return RoleChallenger
	case b.AcceptorID:
		return RoleAcceptor
	case b.RefereeID:
		return RoleReferee
	default:
		return RoleSpectator
	}
}

// Record is an athlete's lifetime win/loss/draw tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// StyleScore is one entry of an athlete's per-style rating history.
type StyleScore struct {
	StyleName string `json:"styleName"`
	Score     int    `json:"score"`
}
