package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ronincompetition/ronin/internal/cache"
	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/util/logs"
)

// ErrUnavailable means the roster could not be fetched. Callers render
// an empty directory rather than failing the whole screen.
var ErrUnavailable = errors.New("athlete directory unavailable")

const rosterTTL = 5 * time.Minute

// API is the slice of the remote service the directory consumes.
type API interface {
	ListAthletes(ctx context.Context) ([]model.Athlete, error)
	Record(ctx context.Context, athleteID model.AthleteID) (*model.Record, error)
	ScoreHistory(ctx context.Context, athleteID model.AthleteID) ([]model.StyleScore, error)
}

// Directory serves the athlete roster and opponent/referee candidate
// search over it. The roster is a read-mostly cache refreshed wholesale.
type Directory struct {
	api   API
	cache cache.Repository
}

func NewDirectory(api API, c cache.Repository) *Directory {
	return &Directory{api: api, cache: c}
}

func (d *Directory) List(ctx context.Context) ([]model.Athlete, error) {
	log := logs.Logger(ctx)

	cached, err := d.cache.GetRoster(ctx)
	if err != nil {
		log.Warn("failed to get roster from cache", "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	roster, err := d.api.ListAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if roster == nil {
		roster = []model.Athlete{}
	}
	if err := d.cache.SetRoster(ctx, roster, rosterTTL); err != nil {
		log.Warn("failed to cache roster", "error", err)
	}
	return roster, nil
}

// Search matches query case-insensitively against username, first and
// last name. The session athlete is always excluded; callers compose
// further exclusions (an already-chosen participant) via exclude.
// An empty query yields no candidates.
func (d *Directory) Search(ctx context.Context, query string, exclude ...model.AthleteID) ([]model.Athlete, error) {
	if query == "" {
		return []model.Athlete{}, nil
	}

	roster, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[model.AthleteID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	q := strings.ToLower(query)
	matches := make([]model.Athlete, 0)
	for _, a := range roster {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		if strings.Contains(strings.ToLower(a.Username), q) ||
			strings.Contains(strings.ToLower(a.FirstName), q) ||
			strings.Contains(strings.ToLower(a.LastName), q) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}
