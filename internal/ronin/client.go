package ronin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ronincompetition/ronin/internal/model"
)

// ProposeRequest is the create-bout payload. The three lifecycle flags
// are always submitted false; the service owns every later change.
type ProposeRequest struct {
	ChallengerID model.AthleteID `json:"challengerId"`
	AcceptorID   model.AthleteID `json:"acceptorId"`
	RefereeID    model.AthleteID `json:"refereeId"`
	StyleID      model.StyleID   `json:"styleId"`
	Accepted     bool            `json:"accepted"`
	Completed    bool            `json:"completed"`
	Cancelled    bool            `json:"cancelled"`
}

// OutcomeRequest is the referee's decision payload. For a draw the
// winner/loser slots still carry challenger/acceptor respectively; the
// flag takes precedence everywhere downstream.
type OutcomeRequest struct {
	WinnerID model.AthleteID `json:"winnerId"`
	LoserID  model.AthleteID `json:"loserId"`
	StyleID  model.StyleID   `json:"styleId"`
	IsDraw   bool            `json:"isDraw"`
}

// Client is the full surface of the remote competition service the
// client core depends on. The service is the single source of truth;
// nothing here applies local mutations.
type Client interface {
	ListAthletes(ctx context.Context) ([]model.Athlete, error)
	ListStyles(ctx context.Context) ([]model.Style, error)
	CommonStyles(ctx context.Context, opponentID, selfID model.AthleteID) ([]model.Style, error)

	PendingBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)
	IncompleteBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)

	ProposeBout(ctx context.Context, req ProposeRequest) (*model.Bout, error)
	AcceptBout(ctx context.Context, boutID model.BoutID) error
	DeclineBout(ctx context.Context, boutID model.BoutID) error
	CancelBout(ctx context.Context, boutID model.BoutID, athleteID model.AthleteID) error
	CompleteBout(ctx context.Context, boutID model.BoutID, req OutcomeRequest) error

	Feed(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error)
	Record(ctx context.Context, athleteID model.AthleteID) (*model.Record, error)
	ScoreHistory(ctx context.Context, athleteID model.AthleteID) ([]model.StyleScore, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Status: resp.StatusCode}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", op, err)
		}
	}
	return nil
}

func (c *HTTPClient) ListAthletes(ctx context.Context) ([]model.Athlete, error) {
	var athletes []model.Athlete
	if err := c.do(ctx, "list athletes", http.MethodGet, "/api/v1/athletes", nil, &athletes); err != nil {
		return nil, err
	}
	return athletes, nil
}

func (c *HTTPClient) ListStyles(ctx context.Context) ([]model.Style, error) {
	var styles []model.Style
	if err := c.do(ctx, "list styles", http.MethodGet, "/api/v1/styles", nil, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

func (c *HTTPClient) CommonStyles(ctx context.Context, opponentID, selfID model.AthleteID) ([]model.Style, error) {
	path := fmt.Sprintf("/api/v1/styles/common/%d/%d", opponentID, selfID)
	var styles []model.Style
	if err := c.do(ctx, "common styles", http.MethodGet, path, nil, &styles); err != nil {
		return nil, err
	}
	return styles, nil
}

func (c *HTTPClient) PendingBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	path := fmt.Sprintf("/api/v1/bouts/pending/%d", athleteID)
	var bouts []model.Bout
	if err := c.do(ctx, "pending bouts", http.MethodGet, path, nil, &bouts); err != nil {
		return nil, err
	}
	return bouts, nil
}

func (c *HTTPClient) IncompleteBouts(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	path := fmt.Sprintf("/api/v1/bouts/incomplete/%d", athleteID)
	var bouts []model.Bout
	if err := c.do(ctx, "incomplete bouts", http.MethodGet, path, nil, &bouts); err != nil {
		return nil, err
	}
	return bouts, nil
}

func (c *HTTPClient) ProposeBout(ctx context.Context, req ProposeRequest) (*model.Bout, error) {
	var bout model.Bout
	if err := c.do(ctx, "propose bout", http.MethodPost, "/api/v1/bout", req, &bout); err != nil {
		return nil, err
	}
	return &bout, nil
}

func (c *HTTPClient) AcceptBout(ctx context.Context, boutID model.BoutID) error {
	path := fmt.Sprintf("/api/v1/bout/%d/accept", boutID)
	return c.do(ctx, "accept bout", http.MethodPut, path, nil, nil)
}

func (c *HTTPClient) DeclineBout(ctx context.Context, boutID model.BoutID) error {
	path := fmt.Sprintf("/api/v1/bout/%d/decline", boutID)
	return c.do(ctx, "decline bout", http.MethodPut, path, nil, nil)
}

func (c *HTTPClient) CancelBout(ctx context.Context, boutID model.BoutID, athleteID model.AthleteID) error {
	path := fmt.Sprintf("/api/v1/bout/cancel/%d/%d", boutID, athleteID)
	return c.do(ctx, "cancel bout", http.MethodPut, path, nil, nil)
}

func (c *HTTPClient) CompleteBout(ctx context.Context, boutID model.BoutID, req OutcomeRequest) error {
	path := fmt.Sprintf("/api/v1/outcome/bout/%d", boutID)
	return c.do(ctx, "complete bout", http.MethodPost, path, req, nil)
}

func (c *HTTPClient) Feed(ctx context.Context, athleteID model.AthleteID) ([]model.Bout, error) {
	path := fmt.Sprintf("/api/v1/feed/%d", athleteID)
	var bouts []model.Bout
	if err := c.do(ctx, "feed", http.MethodGet, path, nil, &bouts); err != nil {
		return nil, err
	}
	return bouts, nil
}

func (c *HTTPClient) Record(ctx context.Context, athleteID model.AthleteID) (*model.Record, error) {
	path := fmt.Sprintf("/api/v1/athlete/%d/record", athleteID)
	var record model.Record
	if err := c.do(ctx, "record", http.MethodGet, path, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *HTTPClient) ScoreHistory(ctx context.Context, athleteID model.AthleteID) ([]model.StyleScore, error) {
	path := fmt.Sprintf("/api/v1/score/%d", athleteID)
	var scores []model.StyleScore
	if err := c.do(ctx, "score history", http.MethodGet, path, nil, &scores); err != nil {
		return nil, err
	}
	// The service returns null for an athlete with no rated bouts yet.
	if scores == nil {
		scores = []model.StyleScore{}
	}
	return scores, nil
}
