package models

// Session is the caller's identity, passed explicitly into every component
// that scopes reads or authorizes writes. There is no package-level session
// state anywhere in this module.
type Session struct {
	UserID          string
	IsAuthenticated bool
	IsAdmin         bool
}

// EffectiveUserID is the owner to stamp on new records: the session's user
// when authenticated, the demo sentinel otherwise.
func (s *Session) EffectiveUserID() string {
	if s != nil && s.IsAuthenticated && s.UserID != "" {
		return s.UserID
	}
	return DemoUserID
}

// Query filters a fetch. Zero values mean "no constraint on this dimension".
type Query struct {
	UserID     string
	Type       TxType
	RecentDays int
	AdminView  bool
}

// Snapshot is the read model handed to consumers.
type Snapshot struct {
	Transactions []Transaction
	IsLoading    bool
}
