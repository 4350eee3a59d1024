// Command seed replaces every stored character with a sample party
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/purse"
	"github.com/totegamma/purse/core"
)

var sampleCharacters = []core.Character{
	{
		Name:     "Aragorn",
		Currency: core.Currency{Platinum: 5, Gold: 35, Electrum: 0, Silver: 12, Copper: 7},
	},
	{
		Name:     "Gandalf",
		Currency: core.Currency{Platinum: 10, Gold: 120, Electrum: 15, Silver: 30, Copper: 0},
	},
	{
		Name:     "Gimli",
		Currency: core.Currency{Platinum: 0, Gold: 40, Electrum: 0, Silver: 50, Copper: 120},
	},
}

func seed(ctx context.Context, service core.CharacterService) (int, error) {
	err := service.Clean(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear characters")
	}
	slog.InfoContext(ctx, "cleared existing characters")

	for i, character := range sampleCharacters {
		_, err := service.Create(ctx, character)
		if err != nil {
			return i, errors.Wrapf(err, "failed to add %s", character.Name)
		}
	}

	return len(sampleCharacters), nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	_ = godotenv.Load()

	configPath := os.Getenv("PURSE_CONFIG")
	if configPath == "" {
		configPath = "/etc/purse/config.yaml"
	}
	flag.StringVar(&configPath, "config", configPath, "path to config.yaml")
	flag.Parse()

	config := core.DefaultConfig()
	err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect database: %v\n", err)
		os.Exit(1)
	}

	err = db.AutoMigrate(&core.Character{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to migrate schema: %v\n", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.Server.RedisAddr,
		DB:   config.Server.RedisDB,
	})
	defer rdb.Close()

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	service := purse.SetupCharacterService(db, rdb, mc)

	count, err := seed(ctx, service)
	if err != nil {
		slog.Error("error seeding database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info(fmt.Sprintf("added %d sample characters", count))
	fmt.Println("Database seeded successfully!")
}
