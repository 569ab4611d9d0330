package styles

import (
	"context"

	"github.com/ronincompetition/ronin/internal/model"
)

// API is the slice of the remote service the style resolver consumes.
type API interface {
	ListStyles(ctx context.Context) ([]model.Style, error)
	CommonStyles(ctx context.Context, opponentID, selfID model.AthleteID) ([]model.Style, error)
}

// Service resolves sparring styles: the full catalog for display and
// the intersection both parties of a prospective bout practice.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) All(ctx context.Context) ([]model.Style, error) {
	styles, err := s.api.ListStyles(ctx)
	if err != nil {
		return nil, err
	}
	if styles == nil {
		styles = []model.Style{}
	}
	return styles, nil
}

// Common returns the styles both athletes practice. No overlap is an
// empty slice, not an error; the proposal flow surfaces it as
// "no styles in common" without blocking the rest of the screen.
func (s *Service) Common(ctx context.Context, opponentID, selfID model.AthleteID) ([]model.Style, error) {
	styles, err := s.api.CommonStyles(ctx, opponentID, selfID)
	if err != nil {
		return nil, err
	}
	if styles == nil {
		styles = []model.Style{}
	}
	return styles, nil
}
