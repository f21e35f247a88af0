package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/export"
	"expensetracker/internal/kv/file"
	"expensetracker/internal/kv/memory"
	"expensetracker/internal/kv/mongo"
	"expensetracker/internal/kv/redis"
	"expensetracker/internal/kv/sqlite"
	gsheet "expensetracker/internal/sheets/google"
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

// CreateBackend opens the kv store selected by config.Type.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		s := memory.New()
		return &BackendResult{Store: s, Cleanup: s.Close}, nil

	case FileBackend:
		s, err := file.New(config.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file backend: %w", err)
		}
		f.logger.Info("Initialized file backend", "data_directory", config.DataDirectory)
		return &BackendResult{Store: s, Cleanup: s.Close}, nil

	case SQLiteBackend:
		s, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &BackendResult{Store: s, Cleanup: s.Close}, nil

	case RedisBackend:
		s, err := redis.New(ctx, config.RedisURL, config.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis backend: %w", err)
		}
		f.logger.Info("Initialized Redis backend", "prefix", config.RedisPrefix)
		return &BackendResult{Store: s, Cleanup: s.Close}, nil

	case MongoBackend:
		s, err := mongo.New(ctx, config.MongoURI, config.MongoDatabase, config.MongoCollection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Mongo backend: %w", err)
		}
		f.logger.Info("Initialized Mongo backend",
			"database", config.MongoDatabase, "collection", config.MongoCollection)
		return &BackendResult{Store: s, Cleanup: s.Close}, nil
	}
	return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
}

// CreateSinks connects the optional export targets. A target that fails to
// initialize is logged and left out.
func (f *DefaultFactory) CreateSinks(ctx context.Context, config Config) *SinkResult {
	sinks := make(map[string]export.Sink)
	var closers []func() error

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without it", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			sinks[SinkAMQP] = client
			closers = append(closers, client.Close)
		}
	}

	if config.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewClient(ctx, config.GoogleSpreadsheetID, config.GoogleSheetName)
		if err != nil {
			f.logger.Warn("Failed to initialize Google Sheets client, continuing without it", "error", err)
		} else {
			f.logger.Info("Initialized Google Sheets client", "sheet", config.GoogleSheetName)
			sinks[SinkSheets] = client
		}
	}

	return &SinkResult{
		Sinks: sinks,
		Cleanup: func() error {
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}
}
