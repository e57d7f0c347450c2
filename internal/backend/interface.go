// Package backend builds the storage gateway and optional change publisher
// selected by configuration.
package backend

import (
	"context"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// BackendResult holds the constructed gateway and, when AMQP is enabled
// and reachable, a publisher.
type BackendResult struct {
	Gateway   storage.Gateway
	Publisher services.Publisher
}

// ServiceOptions returns the finance service options implied by the result.
func (r *BackendResult) ServiceOptions() []services.Option {
	if r.Publisher == nil {
		return nil
	}
	return []services.Option{services.WithPublisher(r.Publisher)}
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath     string
	CategorySeedFile string

	// Optional change events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
