package storage

import (
	"context"
	"errors"
)

// Keys under which the portal persists its durable state. Every value is a
// JSON payload, including the scalar ones.
const (
	KeyAppData         = "app-data"
	KeyCurrentIdentity = "current-identity"
	KeyLastActivity    = "last-activity-timestamp"
	KeyEditorSnapshot  = "last-editor-snapshot"
)

// ErrKeyNotFound is returned when a key has no stored value.
var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is the durable keyed blob storage the document store persists into.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
