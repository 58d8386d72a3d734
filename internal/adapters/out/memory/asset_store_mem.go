// internal/adapters/out/memory/asset_store_mem.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	assetdom "framecraft/internal/domain/asset"
)

// AssetStoreMem implements asset.MemoryStore: the volatile, lowest
// priority tier. It lives for the lifetime of the process and is
// injected where needed instead of being a package-level global, so
// tests can use isolated instances.
type AssetStoreMem struct {
	mu      sync.RWMutex
	records map[string]assetdom.Record
}

func NewAssetStoreMem() *AssetStoreMem {
	return &AssetStoreMem{
		records: map[string]assetdom.Record{},
	}
}

// Get returns (nil, nil) on a miss.
func (s *AssetStoreMem) Get(_ context.Context, itemID string) (*assetdom.Record, error) {
	if s == nil {
		return nil, errors.New("asset_store_mem: store is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return nil, errors.New("asset_store_mem: itemID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (s *AssetStoreMem) Put(_ context.Context, itemID string, rec assetdom.Record) error {
	if s == nil {
		return errors.New("asset_store_mem: store is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return errors.New("asset_store_mem: itemID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = rec.Normalize()
	return nil
}

func (s *AssetStoreMem) Delete(_ context.Context, itemID string) error {
	if s == nil {
		return errors.New("asset_store_mem: store is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return errors.New("asset_store_mem: itemID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

// Len reports the number of held records (used by diagnostics).
func (s *AssetStoreMem) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
