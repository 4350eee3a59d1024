package character

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/purse/core"
)

var validate = validator.New()

type service struct {
	repo Repository
}

// NewService creates a new character service
func NewService(repo Repository) core.CharacterService {
	return &service{repo: repo}
}

func checkID(id string) error {
	if _, err := xid.FromString(id); err != nil {
		return core.NewErrorInvalidID()
	}
	return nil
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required"); err != nil {
		return "", core.NewErrorInvalidArgument(core.MessageNameRequired)
	}
	return name, nil
}

// Count returns the total number of characters
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// List returns every character, newest first
func (s *service) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	return s.repo.List(ctx)
}

// Get returns a character by ID
func (s *service) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	span.SetAttributes(attribute.String("id", id))

	if err := checkID(id); err != nil {
		return core.Character{}, err
	}

	return s.repo.Get(ctx, id)
}

// Create stores a new character with a fresh id and creation time
func (s *service) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	name, err := checkName(character.Name)
	if err != nil {
		return core.Character{}, err
	}

	character.ID = xid.New().String()
	character.Name = name
	character.CreatedAt = time.Now().Truncate(time.Microsecond)

	if err := validate.Struct(character); err != nil {
		return core.Character{}, core.NewErrorInvalidArgument(err.Error())
	}

	created, err := s.repo.Create(ctx, character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	s.publish(ctx, core.CharacterEvent{Type: core.EventCreated, ID: created.ID, Character: &created})

	return created, nil
}

// Update applies a partial update: name if given, and only the given currency fields
func (s *service) Update(ctx context.Context, id string, patch core.CharacterPatch) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Update")
	defer span.End()

	span.SetAttributes(attribute.String("id", id))

	if err := checkID(id); err != nil {
		return core.Character{}, err
	}

	character, err := s.repo.Get(ctx, id)
	if err != nil {
		return core.Character{}, err
	}

	if patch.Name != nil {
		name, err := checkName(*patch.Name)
		if err != nil {
			return core.Character{}, err
		}
		character.Name = name
	}

	if patch.Currency != nil {
		patch.Currency.ApplyTo(&character.Currency)
	}

	updated, err := s.repo.Update(ctx, character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	s.publish(ctx, core.CharacterEvent{Type: core.EventUpdated, ID: updated.ID, Character: &updated})

	return updated, nil
}

// Delete removes a character permanently
func (s *service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Character.Service.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("id", id))

	if err := checkID(id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, core.CharacterEvent{Type: core.EventDeleted, ID: id})

	return nil
}

// Clean deletes every character
func (s *service) Clean(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Character.Service.Clean")
	defer span.End()

	return s.repo.Clean(ctx)
}

func (s *service) publish(ctx context.Context, event core.CharacterEvent) {
	err := s.repo.PublishEvent(ctx, event)
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to publish character event",
			slog.String("error", errors.Wrap(err, event.Type).Error()),
			slog.String("id", event.ID),
		)
	}
}
