package feed

import (
	"context"
	"log/slog"

	"github.com/ronincompetition/ronin/internal/model"
	"github.com/ronincompetition/ronin/internal/outcome"
	"github.com/ronincompetition/ronin/internal/util/logs"
)

// API is the slice of the remote service the feed consumes.
type API interface {
	Feed(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)
}

// Entry is one resolved bout enriched with its projected outcome. It
// has no identity beyond the underlying bout and is recomputed on
// every fetch.
type Entry struct {
	BoutID     model.BoutID    `json:"boutId"`
	Challenger string          `json:"challenger"`
	Acceptor   string          `json:"acceptor"`
	Style      string          `json:"style"`
	Outcome    outcome.Outcome `json:"outcome"`
}

// Assemble projects resolved bouts into feed entries, preserving the
// service's ordering. Records that fail projection are logged and
// dropped; one bad row never takes the feed down. Empty input is an
// empty feed, which callers keep distinct from a fetch failure.
func Assemble(log *slog.Logger, bouts []model.Bout) []Entry {
	entries := make([]Entry, 0, len(bouts))
	for _, b := range bouts {
		projected, err := outcome.Project(b)
		if err != nil {
			log.Warn("excluding bout from feed", "boutId", b.ID, "error", err)
			continue
		}
		entries = append(entries, Entry{
			BoutID:     b.ID,
			Challenger: b.ChallengerName(),
			Acceptor:   b.AcceptorName(),
			Style:      b.StyleName,
			Outcome:    *projected,
		})
	}
	return entries
}

// Assembler fetches an athlete's feed from the service and projects it.
type Assembler struct {
	api API
}

func NewAssembler(api API) *Assembler {
	return &Assembler{api: api}
}

func (a *Assembler) Fetch(ctx context.Context, athleteID model.AthleteID) ([]Entry, error) {
	bouts, err := a.api.Feed(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return Assemble(logs.Logger(ctx), bouts), nil
}
