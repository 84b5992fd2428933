package repository

import (
	"context"
	"encoding/json"

	"beautyStore/entities"

	"go.uber.org/zap"
)

const (
	SavedOrdersKey   = "tommy-saved-orders"
	SavedCustomerKey = "tommy-saved-customer"
	SnapshotKey      = "tommy-beauty-store"
)

// SavedDataRepository stores typed JSON blobs in a LocalStore. Reads never
// fail: a missing, unreadable or corrupt value yields the zero default.
type SavedDataRepository struct {
	ls  LocalStore
	log *zap.Logger
}

func NewSavedDataRepository(ls LocalStore, log *zap.Logger) *SavedDataRepository {
	return &SavedDataRepository{
		ls:  ls,
		log: orNop(log).Named("local"),
	}
}

// SavedOrders returns the local order history, newest first.
func (s *SavedDataRepository) SavedOrders(ctx context.Context) []entities.SavedOrder {
	var orders []entities.SavedOrder
	if !s.read(ctx, SavedOrdersKey, &orders) {
		return []entities.SavedOrder{}
	}
	if orders == nil {
		orders = []entities.SavedOrder{}
	}
	return orders
}

func (s *SavedDataRepository) SaveSavedOrders(ctx context.Context, orders []entities.SavedOrder) error {
	if orders == nil {
		orders = []entities.SavedOrder{}
	}
	return s.write(ctx, SavedOrdersKey, orders)
}

// SavedCustomer returns nil when none was stored yet.
func (s *SavedDataRepository) SavedCustomer(ctx context.Context) *entities.SavedCustomer {
	var c *entities.SavedCustomer
	if !s.read(ctx, SavedCustomerKey, &c) {
		return nil
	}
	return c
}

func (s *SavedDataRepository) SaveSavedCustomer(ctx context.Context, c entities.SavedCustomer) error {
	return s.write(ctx, SavedCustomerKey, c)
}

func (s *SavedDataRepository) Snapshot(ctx context.Context) entities.Snapshot {
	var snap entities.Snapshot
	if !s.read(ctx, SnapshotKey, &snap) {
		return entities.Snapshot{}
	}
	return snap
}

func (s *SavedDataRepository) SaveSnapshot(ctx context.Context, snap entities.Snapshot) error {
	return s.write(ctx, SnapshotKey, snap)
}

func (s *SavedDataRepository) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.ls.Get(ctx, key)
	if err != nil {
		s.log.Warn("read failed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("corrupt value, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *SavedDataRepository) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal failed", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := s.ls.Set(ctx, key, string(data)); err != nil {
		s.log.Error("write failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
