package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"simpletodo/internal/models"
)

// DefaultKey is the slot the task collection is stored under.
const DefaultKey = "tasks"

var (
	// ErrNotFound is returned by a KV when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrPersist wraps every failure to save or load the task collection.
	ErrPersist = errors.New("persistence failed")
)

// KV is the durable key-value slot the task collection is mirrored into.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Gateway serializes the whole task collection to and from a single KV key.
// It never holds on to the slices it is given.
type Gateway struct {
	kv  KV
	key string
}

// NewGateway returns a Gateway writing under key. An empty key means DefaultKey.
func NewGateway(kv KV, key string) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	return &Gateway{kv: kv, key: key}
}

// Key returns the KV key used for the collection.
func (g *Gateway) Key() string {
	return g.key
}

// Save writes the full collection as a JSON array, preserving order.
func (g *Gateway) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("%w: failed to encode tasks: %w", ErrPersist, err)
	}

	if err := g.kv.Set(ctx, g.key, data); err != nil {
		return fmt.Errorf("%w: failed to write %q: %w", ErrPersist, g.key, err)
	}

	return nil
}

// Load reads the collection back. A missing key yields an empty collection.
func (g *Gateway) Load(ctx context.Context) ([]models.Task, error) {
	data, err := g.kv.Get(ctx, g.key)
	if errors.Is(err, ErrNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %q: %w", ErrPersist, g.key, err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tasks: %w", ErrPersist, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks, nil
}

// Close releases the underlying KV.
func (g *Gateway) Close() error {
	return g.kv.Close()
}
