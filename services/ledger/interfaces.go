package ledger

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "momo-ledger/models"
)

// RemoteRepository is the remote transaction store the facade reads through
// and writes to when a session is authenticated.
type RemoteRepository interface {
	Fetch(ctx context.Context, q models.Query) ([]models.RemoteRow, error)
	FetchAllWithProfiles(ctx context.Context, q models.Query) ([]models.AdminRow, error)
	Insert(ctx context.Context, row models.RemoteRow) (string, error)
	Update(ctx context.Context, id string, patch models.TxPatch) error
	Delete(ctx context.Context, id string) error
}

// CacheStore is the capped local history store. It serves unauthenticated
// sessions entirely and backs every authenticated read as the fallback.
type CacheStore interface {
	Save(ctx context.Context, tx models.Transaction) error
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	GetByType(ctx context.Context, txType models.TxType) ([]models.Transaction, error)
	GetRecent(ctx context.Context, days int) ([]models.Transaction, error)
	ToggleFavorite(ctx context.Context, key models.DedupKey) (bool, error)
}

// SignalBus is the zero-payload cross-view refresh channel.
type SignalBus interface {
	Broadcast(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan struct{}, func(), error)
}
