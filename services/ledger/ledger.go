package ledger

import (
	// Go Internal Packages
	"context"
	"sync"
	"sync/atomic"
	"time"

	// Local Packages
	errors "momo-ledger/errors"
	helpers "momo-ledger/helpers"
	models "momo-ledger/models"
	normalizer "momo-ledger/services/normalizer"
	reconciler "momo-ledger/services/reconciler"
	utils "momo-ledger/utils"

	// External Packages
	"go.uber.org/zap"
)

// Ledger is the transaction repository facade. It orchestrates the remote
// store, the local cache, the normalizer and the reconciler behind one
// read/write surface, scoped by an explicit session.
//
// Reads prefer availability over freshness: a remote failure silently
// degrades to cached results. Every completed fetch carries a monotonic
// generation token; a fetch that resolves after a newer one never
// overwrites the snapshot.
type Ledger struct {
	session *models.Session
	remote  RemoteRepository
	cache   CacheStore
	signal  SignalBus
	norm    *normalizer.Normalizer
	logger  *zap.Logger

	pollInterval time.Duration
	now          func() time.Time

	notify chan struct{}
	seq    atomic.Uint64

	mu        sync.Mutex
	applied   uint64
	snapshot  models.Snapshot
	lastQuery models.Query
}

func New(session *models.Session, remote RemoteRepository, cache CacheStore,
	signal SignalBus, norm *normalizer.Normalizer, logger *zap.Logger,
	pollInterval time.Duration) *Ledger {
	return &Ledger{
		session:      session,
		remote:       remote,
		cache:        cache,
		signal:       signal,
		norm:         norm,
		logger:       logger,
		pollInterval: pollInterval,
		now:          time.Now,
		notify:       make(chan struct{}, 1),
	}
}

// scope pins the query to what the session may see: authenticated non-admin
// callers only ever read their own records, whatever the query asked for.
// Admin callers keep the query as given; an empty UserID means all users.
func (l *Ledger) scope(q models.Query) models.Query {
	if l.session.IsAuthenticated && !l.session.IsAdmin {
		q.UserID = l.session.UserID
	}
	q.AdminView = q.AdminView && l.session.IsAdmin
	return q
}

// Fetch returns the reconciled, filtered, newest-first transaction list for
// the query and updates the snapshot.
func (l *Ledger) Fetch(ctx context.Context, q models.Query) ([]models.Transaction, error) {
	q = l.scope(q)
	gen := l.seq.Add(1)

	l.mu.Lock()
	l.snapshot.IsLoading = true
	l.lastQuery = q
	l.mu.Unlock()

	txs := l.load(ctx, q)
	l.commit(gen, txs)
	return txs, nil
}

// load produces the list for an already-scoped query. Unauthenticated
// sessions are served from cache alone; authenticated ones merge cache and
// remote, falling back to cache when the remote store is unreachable.
func (l *Ledger) load(ctx context.Context, q models.Query) []models.Transaction {
	local := l.loadCache(ctx, q)
	if !l.session.IsAuthenticated {
		return local
	}

	rows, err := l.fetchRemote(ctx, q)
	if err != nil {
		l.logger.Warn("remote fetch failed, serving cached results", zap.Error(err))
		return local
	}

	remote := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		remote = append(remote, l.norm.FromRemote(row))
	}

	merged := reconciler.Merge(local, remote)
	return reconciler.Filter(merged, q, l.now())
}

// fetchRemote picks the remote read path: admins without an explicit owner
// go through the all-records view, everyone else through the plain fetch.
func (l *Ledger) fetchRemote(ctx context.Context, q models.Query) ([]models.RemoteRow, error) {
	if l.session.IsAdmin && q.UserID == "" {
		adminRows, err := l.remote.FetchAllWithProfiles(ctx, q)
		if err != nil {
			return nil, err
		}
		rows := make([]models.RemoteRow, 0, len(adminRows))
		for _, row := range adminRows {
			rows = append(rows, row.RemoteRow)
		}
		return rows, nil
	}
	return l.remote.Fetch(ctx, q)
}

// loadCache reads the narrowest cache list for the query, then applies the
// remaining filter dimensions. A cache read failure yields an empty list,
// never an error.
func (l *Ledger) loadCache(ctx context.Context, q models.Query) []models.Transaction {
	var (
		list []models.Transaction
		err  error
	)
	switch {
	case q.UserID != "":
		list, err = l.cache.GetByUser(ctx, q.UserID)
	case q.Type != "":
		list, err = l.cache.GetByType(ctx, q.Type)
	case q.RecentDays > 0:
		list, err = l.cache.GetRecent(ctx, q.RecentDays)
	default:
		list, err = l.cache.GetAll(ctx)
	}
	if err != nil {
		l.logger.Warn("cache read failed, treating as empty", zap.Error(err))
		return nil
	}
	return reconciler.Filter(list, q, l.now())
}

// Add validates and stores a new transaction, defaulting the timestamp,
// owner and display date. Authenticated sessions write remotely with a
// cache fallback; unauthenticated ones write straight to cache. A refresh
// signal is always broadcast.
func (l *Ledger) Add(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.Type == models.TxData && tx.DataPackage == "" {
		tx.DataPackage = models.DefaultDataPackage
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}

	now := l.now()
	if tx.Timestamp == 0 {
		tx.Timestamp = helpers.MillisFromTime(now)
	}
	if tx.UserID == "" {
		tx.UserID = l.session.EffectiveUserID()
	}
	if tx.Date == "" {
		tx.Date = l.norm.Label(helpers.TimeFromMillis(tx.Timestamp))
	}
	if tx.Type == models.TxSend {
		tx.IsMomoPay = utils.IsMomoPayCode(tx.To)
	}

	if !l.session.IsAuthenticated {
		if err := l.cache.Save(ctx, tx); err != nil {
			return models.Transaction{}, err
		}
		return tx, nil
	}

	id, err := l.remote.Insert(ctx, l.norm.ToRemote(tx))
	if err != nil {
		l.logger.Warn("remote insert failed, caching locally", zap.Error(err))
		if cerr := l.cache.Save(ctx, tx); cerr != nil {
			return models.Transaction{}, cerr
		}
		return tx, nil
	}
	tx.ID = id

	if err := l.signal.Broadcast(ctx); err != nil {
		l.logger.Warn("failed to broadcast refresh signal", zap.Error(err))
	}
	return tx, nil
}

// Update applies an admin edit to a remote row, then refreshes the view.
// Non-admin sessions are rejected before any write is attempted.
func (l *Ledger) Update(ctx context.Context, id string, patch models.TxPatch) error {
	if !l.session.IsAdmin {
		return errors.PermissionDeniedErr("update")
	}
	if err := l.remote.Update(ctx, id, patch); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}

// Remove deletes a remote row, admin only, then refreshes the view.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	if !l.session.IsAdmin {
		return errors.PermissionDeniedErr("remove")
	}
	if err := l.remote.Delete(ctx, id); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}

// FetchAdmin is the elevated read: all users' transactions joined with
// profile metadata. Remote only; there is no cached copy of other users'
// records to fall back to.
func (l *Ledger) FetchAdmin(ctx context.Context, q models.Query) ([]models.AdminTransaction, error) {
	if !l.session.IsAdmin {
		return nil, errors.PermissionDeniedErr("admin view")
	}
	rows, err := l.remote.FetchAllWithProfiles(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.AdminTransaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, l.norm.FromAdminRemote(row))
	}
	return out, nil
}

// ToggleFavorite flips the local-only favorite annotation.
func (l *Ledger) ToggleFavorite(ctx context.Context, key models.DedupKey) (bool, error) {
	return l.cache.ToggleFavorite(ctx, key)
}

// Snapshot returns the current read model.
func (l *Ledger) Snapshot() models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// Refresh re-runs the last fetch under a fresh generation token. Safe to
// call concurrently with Fetch and the Run loop.
func (l *Ledger) Refresh(ctx context.Context) {
	l.mu.Lock()
	q := l.lastQuery
	l.mu.Unlock()

	gen := l.seq.Add(1)
	txs := l.load(ctx, q)
	l.commit(gen, txs)
}

// commit installs a fetch result unless a newer generation already landed.
func (l *Ledger) commit(gen uint64, txs []models.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen < l.applied {
		return
	}
	l.applied = gen
	l.snapshot = models.Snapshot{Transactions: txs, IsLoading: false}
}

// Notify queues one push-channel refresh. Pending notifications coalesce.
func (l *Ledger) Notify() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Run keeps the snapshot fresh until ctx is cancelled: a poll ticker, the
// cross-view signal subscription and push notifications each trigger a full
// re-fetch. All three are released on return.
func (l *Ledger) Run(ctx context.Context) error {
	signals, release, err := l.signal.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer release()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	l.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-signals:
			if !ok {
				// subscription lost; polling still covers us
				signals = nil
				continue
			}
		case <-l.notify:
		}
		l.Refresh(ctx)
	}
}
