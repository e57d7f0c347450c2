package backend

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the gateway for config.Type. An unreachable broker is
// logged and the backend runs without change events.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := storage.SeedCategories(config.CategorySeedFile)

	gateway, err := f.createGateway(config, seed)
	if err != nil {
		return nil, err
	}

	result := &BackendResult{Gateway: gateway}
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events", "error", err)
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			result.Publisher = client
		}
	}

	return result, nil
}

func (f *DefaultFactory) createGateway(config Config, seed []core.Category) (storage.Gateway, error) {
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, seed)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath, "seed_categories", len(seed))
		return repo, nil
	case MemoryBackend:
		f.logger.Info("Initialized memory backend", "seed_categories", len(seed))
		return memory.New(seed), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
