package bout

import (
	"context"
	"fmt"
	"time"

	"github.com/ronincompetition/ronin/internal/cache"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/ronin"
	"github.com/ronincompetition/ronin/internal/util"
	"github.com/ronincompetition/ronin/internal/util/logs"
)

const listTTL = time.Minute

// API is the slice of the remote service the lifecycle machine drives.
type API interface {
	PendingBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)
	IncompleteBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)
	ProposeBout(ctx context.Context, req ronin.ProposeRequest) (*model.Bout, error)
	AcceptBout(ctx context.Context, boutID model.BoutID) error
	DeclineBout(ctx context.Context, boutID model.BoutID) error
	CancelBout(ctx context.Context, boutID model.BoutID, athleteID model.AthleteID) error
	CompleteBout(ctx context.Context, boutID model.BoutID, req ronin.OutcomeRequest) error
}

// Machine drives the bout lifecycle. Every transition is a single
// authoritative call to the remote service; on success the affected
// cached lists are dropped so the next read reflects server truth.
// Nothing is mutated locally and nothing is retried automatically.
// A rejected transition means another actor won the race, and the
// caller refreshes and tries again if it still makes sense.
type Machine struct {
	api   API
	cache cache.Repository
}

func NewMachine(api API, c cache.Repository) *Machine {
	return &Machine{api: api, cache: c}
}

// Propose validates and submits a new bout. On success the challenger,
// opponent and referee all see fresh lists on their next fetch.
func (m *Machine) Propose(ctx context.Context, p Proposal) (*model.Bout, error) {
	if err := ValidateProposal(p); err != nil {
		return nil, err
	}

	req := ronin.ProposeRequest{
		ChallengerID: p.ChallengerID,
		AcceptorID:   p.Opponent.ID,
		RefereeID:    p.Referee.ID,
		StyleID:      p.Style.ID,
		Accepted:     false,
		Completed:    false,
		Cancelled:    false,
	}
	created, err := m.api.ProposeBout(ctx, req)
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx, p.ChallengerID, p.Opponent.ID, p.Referee.ID)
	return created, nil
}

// Accept moves a proposed bout to awaiting-result. Only the acceptor
// is ever offered this transition (see ActionsFor); the service is the
// authority if a stale affordance slips through.
func (m *Machine) Accept(ctx context.Context, viewer model.AthleteID, boutID model.BoutID) error {
	parties := m.participants(ctx, viewer, boutID)
	if err := m.api.AcceptBout(ctx, boutID); err != nil {
		return err
	}
	m.invalidate(ctx, parties...)
	return nil
}

func (m *Machine) Decline(ctx context.Context, viewer model.AthleteID, boutID model.BoutID) error {
	parties := m.participants(ctx, viewer, boutID)
	if err := m.api.DeclineBout(ctx, boutID); err != nil {
		return err
	}
	m.invalidate(ctx, parties...)
	return nil
}

func (m *Machine) Cancel(ctx context.Context, viewer model.AthleteID, boutID model.BoutID) error {
	parties := m.participants(ctx, viewer, boutID)
	if err := m.api.CancelBout(ctx, boutID, viewer); err != nil {
		return err
	}
	m.invalidate(ctx, parties...)
	return nil
}

// Complete records the referee's decision. The winner/loser pair must
// be the bout's participants; for a draw the pair is still submitted
// as challenger/acceptor with the flag set, and the flag wins.
func (m *Machine) Complete(ctx context.Context, viewer model.AthleteID, boutID model.BoutID, winnerID, loserID model.AthleteID, styleID model.StyleID, isDraw bool) error {
	req := ronin.OutcomeRequest{
		WinnerID: winnerID,
		LoserID:  loserID,
		StyleID:  styleID,
		IsDraw:   isDraw,
	}
	if err := m.api.CompleteBout(ctx, boutID, req); err != nil {
		return err
	}
	m.invalidate(ctx, viewer, winnerID, loserID)
	return nil
}

// Pending is the list of unaccepted proposals involving the athlete.
func (m *Machine) Pending(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	return m.list(ctx, cache.ListPending, athleteID, m.api.PendingBouts)
}

// Incomplete is the list of accepted bouts still awaiting the referee.
func (m *Machine) Incomplete(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	return m.list(ctx, cache.ListIncomplete, athleteID, m.api.IncompleteBouts)
}

func (m *Machine) list(ctx context.Context, kind cache.ListKind, athleteID model.AthleteID, fetch func(context.Context, model.AthleteID) ([]model.Bout, error)) ([]model.Bout, error) {
	log := logs.Logger(ctx)

	cached, err := m.cache.GetBouts(ctx, kind, athleteID)
	if err != nil {
		log.Warn(fmt.Sprintf("failed to get %s bouts from cache", kind), "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	bouts, err := fetch(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if bouts == nil {
		bouts = []model.Bout{}
	}
	if err := m.cache.SetBouts(ctx, kind, athleteID, bouts, listTTL); err != nil {
		log.Warn(fmt.Sprintf("failed to cache %s bouts", kind), "error", err)
	}
	return bouts, nil
}

// participants resolves everyone whose lists a transition on boutID
// touches: the bout's challenger, acceptor and referee. Accept, decline
// and cancel all act on a proposed bout, so the record is in the
// viewer's pending list. When the lookup misses (expired cache plus a
// fetch failure, or a stale id) only the viewer's lists are dropped and
// the rest age out on TTL.
func (m *Machine) participants(ctx context.Context, viewer model.AthleteID, boutID model.BoutID) []model.AthleteID {
	bouts, err := m.list(ctx, cache.ListPending, viewer, m.api.PendingBouts)
	if err != nil {
		return []model.AthleteID{viewer}
	}
	for _, b := range bouts {
		if b.ID == boutID {
			return []model.AthleteID{b.ChallengerID, b.AcceptorID, b.RefereeID}
		}
	}
	return []model.AthleteID{viewer}
}

// invalidate drops the cached lists of everyone a transition may have
// touched. Cache trouble is logged and ignored: entries expire on
// their own and the service already accepted the transition.
func (m *Machine) invalidate(ctx context.Context, athleteIDs ...model.AthleteID) {
	if err := m.cache.InvalidateBouts(ctx, util.Distinct(athleteIDs)...); err != nil {
		logs.Logger(ctx).Warn("failed to invalidate bout lists", "error", err)
	}
}
