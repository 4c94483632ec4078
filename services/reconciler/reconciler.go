package reconciler

import (
	// Go Internal Packages
	"sort"
	"time"

	// Local Packages
	models "momo-ledger/models"
)

const millisPerDay = 86400000

// Merge combines locally cached and remotely fetched lists into one view.
// The local list is the base: when both sources hold the same logical
// transaction (equal dedup keys) the local copy wins so local-only
// annotations like the favorite flag survive, and the remote copy is
// dropped. The result is sorted newest-first; ties keep their relative
// order and records without a timestamp sort last.
func Merge(local, remote []models.Transaction) []models.Transaction {
	seen := make(map[models.DedupKey]struct{}, len(local))
	for i := range local {
		seen[local[i].Key()] = struct{}{}
	}

	merged := make([]models.Transaction, 0, len(local)+len(remote))
	merged = append(merged, local...)
	for i := range remote {
		if _, ok := seen[remote[i].Key()]; ok {
			continue
		}
		merged = append(merged, remote[i])
	}

	SortByTimestamp(merged)
	return merged
}

// SortByTimestamp orders a list newest-first in place, stably.
func SortByTimestamp(list []models.Transaction) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp > list[j].Timestamp
	})
}

// Filter applies a query's user, type and recency constraints. Zero-valued
// dimensions pass everything through.
func Filter(list []models.Transaction, q models.Query, now time.Time) []models.Transaction {
	cutoff := int64(0)
	if q.RecentDays > 0 {
		cutoff = now.UnixMilli() - int64(q.RecentDays)*millisPerDay
	}

	out := make([]models.Transaction, 0, len(list))
	for _, tx := range list {
		if q.UserID != "" && tx.UserID != q.UserID {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if cutoff > 0 && tx.Timestamp < cutoff {
			continue
		}
		out = append(out, tx)
	}
	return out
}
