package styles

import (
	"context"
	"testing"

	"github.com/ronincompetition/ronin/internal/model"
)

type fakeStylesAPI struct {
	catalog []model.Style
	common  []model.Style
}

func (f *fakeStylesAPI) ListStyles(ctx context.Context) ([]model.Style, error) {
	return f.catalog, nil
}

func (f *fakeStylesAPI) CommonStyles(ctx context.Context, opponentID, selfID model.AthleteID) ([]model.Style, error) {
	return f.common, nil
}

func TestCommonNoOverlapIsEmptyNotError(t *testing.T) {
	s := NewService(&fakeStylesAPI{})

	styles, err := s.Common(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if styles == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(styles) != 0 {
		t.Errorf("expected no styles, got %v", styles)
	}
}

func TestCommon(t *testing.T) {
	common := []model.Style{{ID: 3, Name: "Judo"}, {ID: 5, Name: "Boxing"}}
	s := NewService(&fakeStylesAPI{common: common})

	styles, err := s.Common(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(styles) != 2 || styles[0].Name != "Judo" {
		t.Errorf("got %v, want %v", styles, common)
	}
}
