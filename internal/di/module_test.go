package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/bersihin/bersihin/internal/app"
	"github.com/bersihin/bersihin/internal/config"
	"github.com/bersihin/bersihin/internal/domain/repository"
	"github.com/bersihin/bersihin/internal/storage/postgres"
	"github.com/bersihin/bersihin/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		RedisAddress:     "localhost:6379",
		GatewayBaseURL:   "http://localhost",
		GatewayServerKey: "server-key",
		TokenSecret:      "secret",
		SweepInterval:    time.Millisecond,
		UnpaidTTL:        time.Hour,
		CompletionGrace:  time.Millisecond,
		SweepBatchSize:   1,
		WorkerPoolSize:   1,
		ShutdownTimeout:  time.Millisecond,
		DispatchLimit:    1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repos := test.NewRepositories()

	var facade *app.BookingFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.Factory(repos)),
			fx.Replace(repository.CleanerRepository(repos.Cleaners())),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected booking facade instance")
	}
}
