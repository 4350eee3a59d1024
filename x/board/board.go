// Package board keeps the locally displayed character list in step with the purse API
package board

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/purse/client"
	"github.com/totegamma/purse/core"
)

var tracer = otel.Tracer("board")

var (
	ErrNameRequired     = errors.New("Please enter a character name")
	ErrUnknownCharacter = errors.New("character is not on the board")
	ErrUnknownField     = errors.New("unknown currency field")
)

// RefreshError means the mutation went through but re-fetching the list afterwards failed
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "failed to refresh characters: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

func (e *RefreshError) Cause() error {
	return e.Err
}

// IsRefreshError reports whether err only concerns the follow-up fetch
func IsRefreshError(err error) bool {
	var refreshErr *RefreshError
	return errors.As(err, &refreshErr)
}

// Form is the raw text of the create form
type Form struct {
	Name     string
	Platinum string
	Gold     string
	Electrum string
	Silver   string
	Copper   string
}

// Currency coerces every amount of the form; anything unparsable counts as 0
func (f Form) Currency() core.Currency {
	return core.Currency{
		Platinum: ParseAmount(f.Platinum),
		Gold:     ParseAmount(f.Gold),
		Electrum: ParseAmount(f.Electrum),
		Silver:   ParseAmount(f.Silver),
		Copper:   ParseAmount(f.Copper),
	}
}

// ParseAmount reads the leading integer of s ("12abc" is 12, "3.9" is 3, "abc" is 0).
// Values out of range clamp to ±math.MaxInt64.
func ParseAmount(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			n = math.MaxInt64
			break
		}
		n = n*10 + d
	}

	if negative {
		return -n
	}
	return n
}

// Board is the client-side copy of the character list
type Board struct {
	client client.Client

	mu         sync.Mutex
	characters []core.Character
}

// New creates an empty board backed by c
func New(c client.Client) *Board {
	return &Board{client: c, characters: []core.Character{}}
}

// Characters returns a snapshot of the displayed list
func (b *Board) Characters() []core.Character {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]core.Character, len(b.characters))
	copy(result, b.characters)
	return result
}

// Refresh replaces the displayed list with the server's.
// A failed fetch leaves the board empty.
func (b *Board) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Board.Refresh")
	defer span.End()

	characters, err := b.client.List(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to fetch characters", slog.String("error", err.Error()))
		characters = []core.Character{}
	}

	b.mu.Lock()
	b.characters = characters
	b.mu.Unlock()

	return err
}

// Create submits the form and re-fetches the list on success.
// A failed re-fetch after a successful create is returned as *RefreshError.
func (b *Board) Create(ctx context.Context, form Form) error {
	ctx, span := tracer.Start(ctx, "Board.Create")
	defer span.End()

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return ErrNameRequired
	}

	_, err := b.client.Create(ctx, name, form.Currency())
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to create character", slog.String("error", err.Error()))
		return err
	}

	if err := b.Refresh(ctx); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}

// Increment adds one coin of field to the character
func (b *Board) Increment(ctx context.Context, id, field string) error {
	return b.adjust(ctx, id, field, func(current int64) int64 {
		return current + 1
	})
}

// Decrement removes one coin of field from the character, never going below zero
func (b *Board) Decrement(ctx context.Context, id, field string) error {
	return b.adjust(ctx, id, field, func(current int64) int64 {
		return max(0, current-1)
	})
}

func (b *Board) find(id string) (core.Character, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.characters {
		if c.ID == id {
			return c, true
		}
	}
	return core.Character{}, false
}

func (b *Board) adjust(ctx context.Context, id, field string, next func(int64) int64) error {
	ctx, span := tracer.Start(ctx, "Board.Adjust")
	defer span.End()

	character, ok := b.find(id)
	if !ok {
		return ErrUnknownCharacter
	}

	current, ok := character.Currency.Get(field)
	if !ok {
		return errors.Wrap(ErrUnknownField, field)
	}

	patch, _ := core.NewCurrencyPatch(field, next(current))
	updated, err := b.client.Update(ctx, id, core.CharacterPatch{Currency: &patch})
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to update currency",
			slog.String("id", id),
			slog.String("field", field),
			slog.String("error", err.Error()),
		)
		return err
	}

	value, _ := updated.Currency.Get(field)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.characters {
		if b.characters[i].ID == id {
			b.characters[i].Currency.Set(field, value)
		}
	}

	return nil
}

// Delete asks confirm first; on a yes it deletes the character and re-fetches the list.
// It reports whether a deletion happened. A failed re-fetch after a successful delete
// is returned as *RefreshError together with true.
func (b *Board) Delete(ctx context.Context, id string, confirm func(core.Character) bool) (bool, error) {
	ctx, span := tracer.Start(ctx, "Board.Delete")
	defer span.End()

	character, ok := b.find(id)
	if !ok {
		return false, ErrUnknownCharacter
	}

	if !confirm(character) {
		return false, nil
	}

	err := b.client.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to delete character", slog.String("id", id), slog.String("error", err.Error()))
		return false, err
	}

	if err := b.Refresh(ctx); err != nil {
		return true, &RefreshError{Err: err}
	}
	return true, nil
}
