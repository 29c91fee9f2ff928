package tokenstore

//go:generate mockgen -source=store.go -destination=mock_store.go -package=tokenstore

// Tokens is the persisted credential pair. Empty fields mean "not stored".
type Tokens struct {
	Access  string `json:"access_token,omitempty"`
	Refresh string `json:"refresh_token,omitempty"`
}

// Empty reports whether no access token is stored.
func (t Tokens) Empty() bool {
	return t.Access == ""
}

// Store persists the access/refresh token pair. It is the only state shared
// across concurrent requests; implementations must be safe for concurrent use.
type Store interface {
	Load() (Tokens, error)
	Save(tokens Tokens) error
	SetAccess(access string) error
	Clear() error
}
