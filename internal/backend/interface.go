package backend

import (
	"context"

	"expensetracker/internal/export"
	"expensetracker/internal/kv"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the kv store and its cleanup function.
type BackendResult struct {
	Store   kv.Store
	Cleanup CleanupFunc
}

// SinkResult holds the optional export targets that are configured.
type SinkResult struct {
	Sinks   map[string]export.Sink
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	CreateSinks(ctx context.Context, config Config) *SinkResult
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// File
	DataDirectory string

	// SQLite
	SQLiteDBPath string

	// Redis; keys are stored under RedisPrefix.
	RedisURL    string
	RedisPrefix string

	// Mongo
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Export sinks; each is skipped when its address is empty.
	AMQPURL             string
	AMQPExchange        string
	AMQPQueue           string
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
	RedisBackend  BackendType = "redis"
	MongoBackend  BackendType = "mongo"
)

// Export sink names.
const (
	SinkAMQP   = "amqp"
	SinkSheets = "sheets"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend, RedisBackend, MongoBackend:
		return true
	default:
		return false
	}
}
