package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
)

// SyncMetaRepository keeps the encoded document so a corrupt value behaves like it does in postgres.
type SyncMetaRepository struct {
	mu      sync.RWMutex
	payload []byte
}

func NewSyncMetaRepository() *SyncMetaRepository {
	return &SyncMetaRepository{}
}

func (r *SyncMetaRepository) Get(_ context.Context) (syncmeta.Meta, bool, error) {
	r.mu.RLock()
	payload := r.payload
	r.mu.RUnlock()

	if payload == nil {
		return syncmeta.Meta{}, false, nil
	}
	meta, err := syncmeta.Decode(payload)
	if err != nil {
		return syncmeta.Meta{}, true, err
	}
	return meta, true, nil
}

func (r *SyncMetaRepository) Save(_ context.Context, meta syncmeta.Meta) error {
	payload, err := syncmeta.Encode(meta)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.payload = payload
	r.mu.Unlock()
	return nil
}

// SetRaw stores an arbitrary document, used to simulate corruption.
func (r *SyncMetaRepository) SetRaw(payload []byte) {
	r.mu.Lock()
	r.payload = append([]byte(nil), payload...)
	r.mu.Unlock()
}
