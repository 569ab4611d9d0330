package bout

import (
	"context"
	"errors"
	"testing"

	"github.com/ronincompetition/ronin/internal/cache"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/ronin"
)

// fakeService is an in-memory stand-in for the remote competition
// service. It owns bout state the way the real service does: the
// machine only ever observes it through list fetches.
type fakeService struct {
	nextID model.BoutID
	bouts  map[model.BoutID]*model.Bout
	calls  int
}

func newFakeService() *fakeService {
	return &fakeService{nextID: 1, bouts: make(map[model.BoutID]*model.Bout)}
}

func (s *fakeService) involves(b *model.Bout, id model.AthleteID) bool {
	return b.ChallengerID == id || b.AcceptorID == id || b.RefereeID == id
}

func (s *fakeService) PendingBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	s.calls++
	out := []model.Bout{}
	for _, b := range s.bouts {
		if s.involves(b, athleteID) && b.State() == model.StateProposed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeService) IncompleteBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	s.calls++
	out := []model.Bout{}
	for _, b := range s.bouts {
		if s.involves(b, athleteID) && b.State() == model.StateAwaitingResult {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeService) ProposeBout(ctx context.Context, req ronin.ProposeRequest) (*model.Bout, error) {
	b := &model.Bout{
		ID:           s.nextID,
		ChallengerID: req.ChallengerID,
		AcceptorID:   req.AcceptorID,
		RefereeID:    req.RefereeID,
		StyleID:      req.StyleID,
	}
	s.nextID++
	s.bouts[b.ID] = b
	out := *b
	return &out, nil
}

func (s *fakeService) AcceptBout(ctx context.Context, boutID model.BoutID) error {
	b, ok := s.bouts[boutID]
	if !ok || b.State() != model.StateProposed {
		return &ronin.StatusError{Op: "accept bout", Status: 409}
	}
	b.Accepted = true
	return nil
}

func (s *fakeService) DeclineBout(ctx context.Context, boutID model.BoutID) error {
	b, ok := s.bouts[boutID]
	if !ok || b.State() != model.StateProposed {
		return &ronin.StatusError{Op: "decline bout", Status: 409}
	}
	b.Declined = true
	return nil
}

func (s *fakeService) CancelBout(ctx context.Context, boutID model.BoutID, athleteID model.AthleteID) error {
	b, ok := s.bouts[boutID]
	if !ok || b.State() != model.StateProposed || b.ChallengerID != athleteID {
		return &ronin.StatusError{Op: "cancel bout", Status: 409}
	}
	b.Cancelled = true
	return nil
}

func (s *fakeService) CompleteBout(ctx context.Context, boutID model.BoutID, req ronin.OutcomeRequest) error {
	b, ok := s.bouts[boutID]
	if !ok || b.State() != model.StateAwaitingResult {
		return &ronin.StatusError{Op: "complete bout", Status: 409}
	}
	winnerScore, loserScore := 25, -10
	if req.IsDraw {
		winnerScore, loserScore = 5, 5
	}
	b.Completed = true
	b.WinnerID = &req.WinnerID
	b.LoserID = &req.LoserID
	b.IsDraw = req.IsDraw
	b.WinnerScore = &winnerScore
	b.LoserScore = &loserScore
	return nil
}

const (
	athleteA model.AthleteID = 7
	athleteB model.AthleteID = 9
	athleteC model.AthleteID = 11
)

func judoProposal() Proposal {
	return Proposal{
		ChallengerID: athleteA,
		Opponent:     &model.Athlete{ID: athleteB},
		Referee:      &model.Athlete{ID: athleteC},
		Style:        &model.Style{ID: 3, Name: "Judo"},
	}
}

func TestLifecycleProposeAcceptComplete(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}

	// The proposal shows up in B's pending list with A as challenger.
	pending, err := m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ChallengerID != athleteA {
		t.Fatalf("expected one pending bout challenged by %d, got %+v", athleteA, pending)
	}

	if err := m.Accept(ctx, athleteB, created.ID); err != nil {
		t.Fatal(err)
	}

	// Accepted: out of B's pending view, into C's referee queue.
	pending, err = m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty pending list after accept, got %+v", pending)
	}
	incomplete, err := m.Incomplete(ctx, athleteC)
	if err != nil {
		t.Fatal(err)
	}
	if len(incomplete) != 1 {
		t.Fatalf("expected one incomplete bout for the referee, got %+v", incomplete)
	}
	if got := incomplete[0].RoleOf(athleteC); got != model.RoleReferee {
		t.Errorf("got role %v, want referee", got)
	}

	if err := m.Complete(ctx, athleteC, created.ID, athleteA, athleteB, 3, false); err != nil {
		t.Fatal(err)
	}

	// Resolved: gone from everyone's incomplete lists.
	for _, id := range []model.AthleteID{athleteA, athleteB, athleteC} {
		incomplete, err := m.Incomplete(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if len(incomplete) != 0 {
			t.Errorf("athlete %d: expected no incomplete bouts, got %+v", id, incomplete)
		}
	}

	final := svc.bouts[created.ID]
	if final.State() != model.StateCompleted || *final.WinnerID != athleteA {
		t.Errorf("expected completed bout won by %d, got %+v", athleteA, final)
	}
}

func TestLifecycleDecline(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Decline(ctx, athleteB, created.ID); err != nil {
		t.Fatal(err)
	}

	// Declined is terminal: absent from every list for all parties.
	for _, id := range []model.AthleteID{athleteA, athleteB, athleteC} {
		pending, err := m.Pending(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		incomplete, err := m.Incomplete(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if len(pending)+len(incomplete) != 0 {
			t.Errorf("athlete %d: expected declined bout in no lists", id)
		}
	}
}

func TestLifecycleCancel(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}

	// Only the challenger may cancel.
	if err := m.Cancel(ctx, athleteB, created.ID); err == nil {
		t.Fatal("expected cancel by non-challenger to be rejected")
	}
	if err := m.Cancel(ctx, athleteA, created.ID); err != nil {
		t.Fatal(err)
	}
	if svc.bouts[created.ID].State() != model.StateCancelled {
		t.Errorf("expected cancelled state, got %v", svc.bouts[created.ID].State())
	}
}

func TestAcceptAfterCancelIsStale(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Cancel(ctx, athleteA, created.ID); err != nil {
		t.Fatal(err)
	}

	// B races A: the rejection is a recoverable conflict, and the
	// service's terminal state stands untouched.
	err = m.Accept(ctx, athleteB, created.ID)
	if !ronin.Rejected(err) {
		t.Fatalf("expected rejected transition, got %v", err)
	}
	if svc.bouts[created.ID].State() != model.StateCancelled {
		t.Errorf("expected bout to stay cancelled, got %v", svc.bouts[created.ID].State())
	}
}

func TestProposeInvalidNeverCallsService(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	p := judoProposal()
	p.Referee = p.Opponent

	_, err := m.Propose(ctx, p)
	if !errors.Is(err, ErrOpponentIsReferee) {
		t.Fatalf("got %v, want ErrOpponentIsReferee", err)
	}
	if len(svc.bouts) != 0 {
		t.Error("expected no bout to be created")
	}
}

func TestAcceptRefreshesAllParticipantLists(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}

	// Warm every non-acting party's cache before the transition: A still
	// sees the open proposal, C has an empty referee queue.
	pending, err := m.Pending(ctx, athleteA)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending bout for the challenger, got %d", len(pending))
	}
	incomplete, err := m.Incomplete(ctx, athleteC)
	if err != nil {
		t.Fatal(err)
	}
	if len(incomplete) != 0 {
		t.Fatalf("expected empty referee queue before accept, got %d", len(incomplete))
	}

	if err := m.Accept(ctx, athleteB, created.ID); err != nil {
		t.Fatal(err)
	}

	// The next fetches reflect server truth, not the warm caches: the
	// proposal left A's pending list and entered C's referee queue.
	pending, err = m.Pending(ctx, athleteA)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("challenger still sees %d pending bouts after accept", len(pending))
	}
	incomplete, err = m.Incomplete(ctx, athleteC)
	if err != nil {
		t.Fatal(err)
	}
	if len(incomplete) != 1 {
		t.Fatalf("accepted bout must appear in the referee's incomplete list on next fetch, got %d bouts", len(incomplete))
	}
	if got := incomplete[0].RoleOf(athleteC); got != model.RoleReferee {
		t.Errorf("got role %v, want referee", got)
	}
}

func TestCancelRefreshesAcceptorList(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	created, err := m.Propose(ctx, judoProposal())
	if err != nil {
		t.Fatal(err)
	}

	pending, err := m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending bout for the acceptor, got %d", len(pending))
	}

	if err := m.Cancel(ctx, athleteA, created.ID); err != nil {
		t.Fatal(err)
	}

	// B's warm cache is dropped by A's cancel; the dead proposal never
	// resurfaces with accept/decline affordances.
	pending, err = m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("acceptor still sees %d pending bouts after cancel", len(pending))
	}
}

func TestListsAreCachedBetweenTransitions(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService()
	m := NewMachine(svc, cache.NewMemory())

	if _, err := m.Propose(ctx, judoProposal()); err != nil {
		t.Fatal(err)
	}

	first, err := m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	fetches := svc.calls

	// Re-fetching without a transition serves the cached list and
	// yields identical results.
	second, err := m.Pending(ctx, athleteB)
	if err != nil {
		t.Fatal(err)
	}
	if svc.calls != fetches {
		t.Errorf("expected cached read, got %d extra fetches", svc.calls-fetches)
	}
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Errorf("expected identical lists, got %+v and %+v", first, second)
	}
}
