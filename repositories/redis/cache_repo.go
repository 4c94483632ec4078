package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"sort"
	"time"

	// Local Packages
	errors "momo-ledger/errors"
	models "momo-ledger/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// List keys mirror the browser cache the store replaces: one general list
// plus capped per-feature history lists.
const (
	KeyGeneral        = "transactions"
	KeySendHistory    = "send_money_history"
	KeyAirtimeHistory = "airtime_history"
)

type ListCaps struct {
	General int
	Send    int
	Airtime int
}

func DefaultCaps() ListCaps {
	return ListCaps{General: 50, Send: 20, Airtime: 10}
}

// CacheStore keeps capped, newest-first transaction lists in Redis. Writers
// always prepend; capacity is enforced by trimming the tail, so the oldest
// records fall off first.
type CacheStore struct {
	client *redis.Client
	logger *zap.Logger
	signal *SignalRepo
	caps   ListCaps
}

func NewCacheStore(client *redis.Client, logger *zap.Logger, signal *SignalRepo, caps ListCaps) *CacheStore {
	return &CacheStore{client: client, logger: logger, signal: signal, caps: caps}
}

// Save prepends the record to the general list and, when the type has a
// feature history, to that list too, then trims each to its cap and
// broadcasts a refresh signal. A failed broadcast is logged, never fatal.
func (s *CacheStore) Save(ctx context.Context, tx models.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return errors.CacheErr("save", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, KeyGeneral, data)
	pipe.LTrim(ctx, KeyGeneral, 0, int64(s.caps.General-1))

	switch tx.Type {
	case models.TxSend:
		pipe.LPush(ctx, KeySendHistory, data)
		pipe.LTrim(ctx, KeySendHistory, 0, int64(s.caps.Send-1))
	case models.TxAirtime:
		pipe.LPush(ctx, KeyAirtimeHistory, data)
		pipe.LTrim(ctx, KeyAirtimeHistory, 0, int64(s.caps.Airtime-1))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.CacheErr("save", err)
	}

	if err := s.signal.Broadcast(ctx); err != nil {
		s.logger.Warn("failed to broadcast refresh signal", zap.Error(err))
	}
	return nil
}

// GetAll returns the general list, re-sorted newest-first on every read.
// Writers under concurrent consumers are not guaranteed to keep order, so
// the sort is defensive rather than an optimization target.
func (s *CacheStore) GetAll(ctx context.Context) ([]models.Transaction, error) {
	return s.readList(ctx, KeyGeneral)
}

// GetByUser returns the general list filtered to one owner.
func (s *CacheStore) GetByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// GetByType reads the feature history list when the type has one, else
// filters the general list.
func (s *CacheStore) GetByType(ctx context.Context, txType models.TxType) ([]models.Transaction, error) {
	switch txType {
	case models.TxSend:
		return s.readList(ctx, KeySendHistory)
	case models.TxAirtime:
		return s.readList(ctx, KeyAirtimeHistory)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out, nil
}

// GetRecent returns general-list records whose timestamp falls within the
// last N days.
func (s *CacheStore) GetRecent(ctx context.Context, days int) ([]models.Transaction, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UnixMilli() - int64(days)*86400000
	out := make([]models.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.Timestamp >= cutoff {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ToggleFavorite flips the local-only favorite annotation on the general
// list record matching the key and returns the new state.
func (s *CacheStore) ToggleFavorite(ctx context.Context, key models.DedupKey) (bool, error) {
	raw, err := s.client.LRange(ctx, KeyGeneral, 0, -1).Result()
	if err != nil {
		return false, errors.CacheErr("toggle favorite", err)
	}

	found := false
	state := false
	rewritten := make([]interface{}, 0, len(raw))
	for _, item := range raw {
		var tx models.Transaction
		if err := json.Unmarshal([]byte(item), &tx); err != nil {
			s.logger.Warn("skipping malformed cached transaction", zap.Error(err))
			continue
		}
		if !found && tx.Key() == key {
			tx.IsFavorite = !tx.IsFavorite
			found = true
			state = tx.IsFavorite
		}
		data, err := json.Marshal(tx)
		if err != nil {
			return false, errors.CacheErr("toggle favorite", err)
		}
		rewritten = append(rewritten, data)
	}

	if !found {
		return false, errors.E(errors.NotFound, "transaction not found in cache", nil)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, KeyGeneral)
	if len(rewritten) > 0 {
		pipe.RPush(ctx, KeyGeneral, rewritten...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.CacheErr("toggle favorite", err)
	}

	if err := s.signal.Broadcast(ctx); err != nil {
		s.logger.Warn("failed to broadcast refresh signal", zap.Error(err))
	}
	return state, nil
}

// readList loads and decodes one list. A malformed entry is logged and
// skipped; a broken cache never takes reads down with it.
func (s *CacheStore) readList(ctx context.Context, key string) ([]models.Transaction, error) {
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, errors.CacheErr("read", err)
	}

	out := make([]models.Transaction, 0, len(raw))
	for _, item := range raw {
		var tx models.Transaction
		if err := json.Unmarshal([]byte(item), &tx); err != nil {
			s.logger.Warn("skipping malformed cached transaction",
				zap.String("list", key), zap.Error(err))
			continue
		}
		out = append(out, tx)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}
