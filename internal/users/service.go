package users

import (
	"context"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Service implements the user operations on top of a store.
type Service struct {
	store  Store
	events Events
	logs   *zap.Logger
	now    func() time.Time
}

// NewService creates the service.
func NewService(store Store, events Events, logs *zap.Logger) *Service {
	return &Service{store: store, events: events, logs: logs, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	u, err := s.store.Get(ctx, id)
	return u, notFound(err)
}

func (s *Service) Create(ctx context.Context, in Input) (User, error) {
	if err := in.validate(true); err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	u := User{CreatedAt: now, UpdatedAt: now}
	in.applyTo(&u)

	u, err := s.store.Create(ctx, u)
	if err != nil {
		return User{}, err
	}

	s.publish(ctx, EventCreated, u)

	return u, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (User, error) {
	if err := in.validate(false); err != nil {
		return User{}, err
	}

	u, err := s.store.Get(ctx, id)
	if err != nil {
		return User{}, notFound(err)
	}

	in.applyTo(&u)
	u.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, u); err != nil {
		return User{}, notFound(err)
	}

	s.publish(ctx, EventUpdated, u)

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	s.publish(ctx, EventDeleted, User{ID: id})

	return nil
}

// publish never fails the operation, the change is already stored.
func (s *Service) publish(ctx context.Context, typ EventType, u User) {
	if err := s.events.Publish(ctx, Event{
		Type: typ, UserID: u.ID, Email: u.Email, OccurredAt: s.now().UTC(),
	}); err != nil {
		s.logs.Warn("failed to publish user event", zap.String("type", string(typ)), zap.Error(err))
	}
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return anyhttp.NewError(anyhttp.CodeNotFound, "not_found", "User not found", anyhttp.WithCause(err))
	}

	return err
}
