package syncmeta

import "context"

type Repository interface {
	// Get returns ErrMalformed (wrapped) when a stored value exists but does not decode.
	Get(ctx context.Context) (Meta, bool, error)
	Save(ctx context.Context, meta Meta) error
}
