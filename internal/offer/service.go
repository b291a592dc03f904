package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-admin/internal/events"
	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	// ErrTerminal is returned for a decision on an offer that was already decided.
	ErrTerminal = errors.New("offer already decided")
)

type Service interface {
	List(ctx context.Context, status Status) ([]Offer, error)
	Create(ctx context.Context, in Input) (*Offer, error)
	Approve(ctx context.Context, id string) (*Offer, error)
	Reject(ctx context.Context, id string) (*Offer, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{repo: repo, publisher: publisher, now: time.Now}
}

// List returns all offers, or only those in status when it is set.
func (s *service) List(ctx context.Context, status Status) ([]Offer, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list offers", zap.String("layer", "service"), zap.Error(err))
		return nil, err
	}
	if status == "" {
		return offers, nil
	}
	out := offers[:0:0]
	for _, o := range offers {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, in Input) (*Offer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOffer"),
	)

	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	o, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to submit offer", zap.Error(err))
		return nil, err
	}
	log.Info("offer submitted", zap.String("offer_id", o.ID))
	return o, nil
}

func (s *service) Approve(ctx context.Context, id string) (*Offer, error) {
	return s.decide(ctx, id, ActionApprove)
}

func (s *service) Reject(ctx context.Context, id string) (*Offer, error) {
	return s.decide(ctx, id, ActionReject)
}

// decide re-reads the offer so a decision is never sent for one that is
// already terminal.
func (s *service) decide(ctx context.Context, id string, action Action) (*Offer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DecideOffer"),
		zap.String("offer_id", id),
		zap.String("action", string(action)),
	)

	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var current *Offer
	for i := range offers {
		if offers[i].ID == id {
			current = &offers[i]
			break
		}
	}
	if current == nil {
		return nil, ErrOfferNotFound
	}
	if !CanTransition(current.Status, action.target()) {
		return nil, fmt.Errorf("%w: %s is %s", ErrTerminal, id, current.Status)
	}

	updated, err := s.repo.Decide(ctx, id, action)
	if err != nil {
		log.Error("failed to decide offer", zap.Error(err))
		return nil, err
	}

	env, err := events.NewEnvelope(events.EventOfferDecided, id, logger.RequestIDFrom(ctx),
		events.OfferDecidedPayload{
			OfferID:  id,
			Title:    updated.Title,
			Decision: string(updated.Status),
			Supplier: updated.Supplier,
		})
	if err == nil {
		err = s.publisher.Publish(ctx, env)
	}
	if err != nil {
		log.Warn("failed to publish offer event", zap.Error(err))
	}

	log.Info("offer decided", zap.String("status", string(updated.Status)))
	return updated, nil
}
