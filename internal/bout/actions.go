package bout

import "github.com/ronincompetition/ronin/internal/model"

// Action is a transition the viewing athlete may request on a bout.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionDecline  Action = "decline"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// ActionsFor is the whole external contract of the lifecycle machine
// in one pure function: which transitions a role may request in a
// state. While proposed, only the challenger can walk it back and only
// the acceptor can answer; once accepted, only the referee can act.
// Terminal states offer nothing to anyone.
func ActionsFor(role model.Role, state model.State) []Action {
	switch state {
	case model.StateProposed:
		switch role {
		case model.RoleChallenger:
			return []Action{ActionCancel}
		case model.RoleAcceptor:
			return []Action{ActionAccept, ActionDecline}
		}
	case model.StateAwaitingResult:
		if role == model.RoleReferee {
			return []Action{ActionComplete}
		}
	}
	return []Action{}
}

// View is a bout as one athlete sees it: the record plus the derived
// state, the viewer's role and the affordances that role unlocks.
type View struct {
	model.Bout
	State   model.State `json:"state"`
	Role    model.Role  `json:"role"`
	Actions []Action    `json:"actions"`
}

func ViewFor(viewer model.AthleteID, b model.Bout) View {
	role := b.RoleOf(viewer)
	state := b.State()
	return View{
		Bout:    b,
		State:   state,
		Role:    role,
		Actions: ActionsFor(role, state),
	}
}

func ViewsFor(viewer model.AthleteID, bouts []model.Bout) []View {
	views := make([]View, 0, len(bouts))
	for _, b := range bouts {
		views = append(views, ViewFor(viewer, b))
	}
	return views
}
