package kvstore

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("empty key")

// Store is implemented by FileStore and MemStore
type Store interface {
	// Get returns found == false if nothing is stored under key
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	// Remove succeeds if key doesn't exist
	Remove(ctx context.Context, key string) error
}

var (
	_ Store = &FileStore{}
	_ Store = &MemStore{}
)

func checkKey(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return ctx.Err()
}
