//go:build wireinject

package purse

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/totegamma/purse/core"
	"github.com/totegamma/purse/x/character"
	"github.com/totegamma/purse/x/socket"
)

var characterServiceProvider = wire.NewSet(character.NewService, character.NewRepository)
var socketHandlerProvider = wire.NewSet(socket.NewHandler, socket.NewService)

// -----------

func SetupCharacterService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) core.CharacterService {
	wire.Build(characterServiceProvider)
	return nil
}

func SetupSocketHandler(rdb *redis.Client) socket.Handler {
	wire.Build(socketHandlerProvider)
	return nil
}
