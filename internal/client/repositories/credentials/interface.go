// Package credentials persists the single auth credential slot of the
// bookswap client. It is a pure storage primitive: no validation or decoding
// happens here.
package credentials

import "context"

// Repository stores the bearer token under one logical slot so it survives
// process restarts. Get returns an empty string when no credential is
// persisted; absence is not an error.
type Repository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
