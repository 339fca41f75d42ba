// Package metadata implements the client's durable key/value slots.
// The bearer token lives here under a fixed key; absence of the key
// means unauthenticated.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
