package cache

import (
	"context"
	"sync"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
)

const sweepInterval = time.Minute

var _ domainRepo.IdempotencyRepository = (*MemoryIdempotencyRepository)(nil)

// MemoryIdempotencyRepository keeps idempotency records in process memory.
// Expired records are dropped on access and by a periodic sweep.
type MemoryIdempotencyRepository struct {
	mu       sync.Mutex
	records  map[string]entity.IdempotencyRecord
	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemoryIdempotencyRepository() *MemoryIdempotencyRepository {
	r := &MemoryIdempotencyRepository{
		records: make(map[string]entity.IdempotencyRecord),
		stop:    make(chan struct{}),
	}
	go r.sweepLoop(sweepInterval)
	return r
}

func (r *MemoryIdempotencyRepository) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

// sweep drops expired records and returns how many remain
func (r *MemoryIdempotencyRepository) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, record := range r.records {
		if record.IsExpired() {
			delete(r.records, k)
		}
	}
	return len(r.records)
}

// Stop ends the sweep loop
func (r *MemoryIdempotencyRepository) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *MemoryIdempotencyRepository) Get(_ context.Context, key, cashierID string) (*entity.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyKey(key, cashierID)
	record, ok := r.records[k]
	if !ok {
		return nil, nil
	}
	if record.IsExpired() {
		delete(r.records, k)
		return nil, nil
	}
	return &record, nil
}

func (r *MemoryIdempotencyRepository) Reserve(_ context.Context, key, cashierID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := idempotencyKey(key, cashierID)
	if record, ok := r.records[k]; ok && !record.IsExpired() {
		return false, nil
	}
	now := time.Now()
	r.records[k] = entity.IdempotencyRecord{Key: key, CashierID: cashierID, CreatedAt: now, ExpiresAt: now.Add(ttl)}
	return true, nil
}

func (r *MemoryIdempotencyRepository) Save(_ context.Context, record *entity.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[idempotencyKey(record.Key, record.CashierID)] = *record
	return nil
}

func (r *MemoryIdempotencyRepository) Release(_ context.Context, key, cashierID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, idempotencyKey(key, cashierID))
	return nil
}
