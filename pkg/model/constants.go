package model

// AccountStore names a per-account bucket in the local bolt database.
type AccountStore string

const (
	KVConfig   AccountStore = "kvConfig"
	FileHashes AccountStore = "fileHashes"
)

const (
	// AccountsBucket is the top-level bucket holding saved accounts.
	AccountsBucket = "accounts"

	// ActiveAccountKey is the kv key naming the account in use.
	ActiveAccountKey = "activeAccount"
)

// ContextKey is the type for values attached to a request context.
type ContextKey string

const (
	AccountKey ContextKey = "account_key"
)

// Account is a saved login on this machine. The session token itself lives in
// the system keyring, not here.
type Account struct {
	Email  string `json:"email"`
	UserID string `json:"userID"`
	APIURL string `json:"apiURL,omitempty"`
}

// StoreKey returns the bucket key identifying this account locally.
func (a Account) StoreKey() string {
	return a.Email
}
