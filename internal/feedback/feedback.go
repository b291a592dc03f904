// Package feedback moderates customer feedback.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type Feedback struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Feedback) validate() error {
	if f.ID == "" {
		return fmt.Errorf("invalid feedback payload: _id is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("invalid feedback %s: rating %d out of range", f.ID, f.Rating)
	}
	return nil
}

// Stats is the rating breakdown; Distribution[i] counts ratings of i+1.
type Stats struct {
	Count        int             `json:"count"`
	Average      decimal.Decimal `json:"average"`
	Distribution [5]int          `json:"distribution"`
}

func Summarize(items []Feedback) Stats {
	var s Stats
	sum := 0
	for _, f := range items {
		if f.Rating < 1 || f.Rating > 5 {
			continue
		}
		s.Count++
		sum += f.Rating
		s.Distribution[f.Rating-1]++
	}
	s.Average = decimal.Zero
	if s.Count > 0 {
		s.Average = decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(s.Count)), 2)
	}
	return s
}

type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type Service interface {
	List(ctx context.Context, minRating int) ([]Feedback, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	client Requester
}

func NewService(client Requester) Service {
	return &service{client: client}
}

// List returns feedback with a rating of at least minRating.
func (s *service) List(ctx context.Context, minRating int) ([]Feedback, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, "/api/feedback", &raw); err != nil {
		logger.FromCtx(ctx).Error("failed to list feedback", zap.String("layer", "service"), zap.Error(err))
		return nil, err
	}
	body, err := api.UnwrapList(raw, "feedback", "feedbacks")
	if err != nil {
		return nil, err
	}
	var items []Feedback
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	out := items[:0]
	for i := range items {
		if err := items[i].validate(); err != nil {
			return nil, err
		}
		if items[i].Rating >= minRating {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteFeedback"),
		zap.String("feedback_id", id),
	)
	if id == "" {
		return ErrFeedbackNotFound
	}
	if err := s.client.Delete(ctx, "/api/feedback/"+url.PathEscape(id), nil); err != nil {
		log.Error("failed to delete feedback", zap.Error(err))
		return err
	}
	log.Info("feedback deleted")
	return nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.List(ctx, 0)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(items), nil
}
