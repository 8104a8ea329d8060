// Package session persists the local session: the bearer token and the
// serialized user profile, stored as key-value pairs in sqlite.
package session

import "context"

// Repository is a small key-value store. Get returns common.ErrorNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
