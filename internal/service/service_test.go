package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/storage"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// newTestStore opens a demo-seeded store on a throwaway Redis instance.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, err := store.Open(context.Background(), storage.NewRedis(client, "edupro"), zerolog.Nop(), store.Options{SeedDemoData: true})
	require.NoError(t, err)
	return s
}

func newTestValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
