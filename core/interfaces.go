//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

type CharacterService interface {
	List(ctx context.Context) ([]Character, error)
	Get(ctx context.Context, id string) (Character, error)
	Create(ctx context.Context, character Character) (Character, error)
	Update(ctx context.Context, id string, patch CharacterPatch) (Character, error)
	Delete(ctx context.Context, id string) error
	Clean(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
