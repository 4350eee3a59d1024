//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/totegamma/purse/core"
)

const countCacheKey = "character_count"

// Repository is the interface for character repository
type Repository interface {
	List(ctx context.Context) ([]core.Character, error)
	Get(ctx context.Context, id string) (core.Character, error)
	Create(ctx context.Context, character core.Character) (core.Character, error)
	Update(ctx context.Context, character core.Character) (core.Character, error)
	Delete(ctx context.Context, id string) error
	Clean(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	PublishEvent(ctx context.Context, event core.CharacterEvent) error
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
	mc  *memcache.Client
}

// NewRepository creates a new character repository
func NewRepository(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) Repository {
	r := &repository{db, rdb, mc}
	r.refreshCount(context.Background())
	return r
}

func (r *repository) refreshCount(ctx context.Context) {
	var count int64
	err := r.db.WithContext(ctx).Model(&core.Character{}).Count(&count).Error
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to count characters",
			slog.String("error", err.Error()),
		)
		return
	}

	err = r.mc.Set(&memcache.Item{Key: countCacheKey, Value: []byte(strconv.FormatInt(count, 10))})
	if err != nil {
		slog.WarnContext(
			ctx, "failed to cache character count",
			slog.String("error", err.Error()),
		)
	}
}

// Count returns the total number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	item, err := r.mc.Get(countCacheKey)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	count, err := strconv.ParseInt(string(item.Value), 10, 64)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}

// List returns every character, newest first
func (r *repository) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.List")
	defer span.End()

	var characters []core.Character
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&characters).Error
	if err != nil {
		span.RecordError(err)
		return []core.Character{}, errors.Wrap(err, "failed to list characters")
	}
	if characters == nil {
		return []core.Character{}, nil
	}

	return characters, nil
}

// Get returns a character by ID
func (r *repository) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Get")
	defer span.End()

	var character core.Character
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Character{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Character{}, errors.Wrap(err, "failed to get character")
	}

	return character, nil
}

// Create inserts a new character
func (r *repository) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	err := r.db.WithContext(ctx).Create(&character).Error
	if err != nil {
		span.RecordError(err)
		return character, errors.Wrap(err, "failed to create character")
	}

	r.refreshCount(ctx)

	return character, nil
}

// Update saves every column of an existing character except createdAt
func (r *repository) Update(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Update")
	defer span.End()

	err := r.db.WithContext(ctx).Save(&character).Error
	if err != nil {
		span.RecordError(err)
		return character, errors.Wrap(err, "failed to update character")
	}

	return character, nil
}

// Delete removes a character permanently
func (r *repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Character.Repository.Delete")
	defer span.End()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&core.Character{})
	if result.Error != nil {
		span.RecordError(result.Error)
		return errors.Wrap(result.Error, "failed to delete character")
	}
	if result.RowsAffected == 0 {
		return core.NewErrorNotFound()
	}

	r.refreshCount(ctx)

	return nil
}

// Clean deletes every character
func (r *repository) Clean(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Character.Repository.Clean")
	defer span.End()

	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&core.Character{}).Error
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to clean characters")
	}

	r.refreshCount(ctx)

	return nil
}

// PublishEvent broadcasts a mutation to every socket subscriber
func (r *repository) PublishEvent(ctx context.Context, event core.CharacterEvent) error {
	ctx, span := tracer.Start(ctx, "Character.Repository.PublishEvent")
	defer span.End()

	jsonstr, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = r.rdb.Publish(ctx, core.CharacterEventChannel, jsonstr).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
