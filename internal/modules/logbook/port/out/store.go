package out

import "context"

// KVStore is the durable medium behind the logbook. Get reports
// apperrors.ErrNotFound for a key that was never set.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
