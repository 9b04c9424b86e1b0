package tim

import (
	"context"
	"time"
)

// ItemsClient provides access to the item endpoints.
type ItemsClient interface {
	// List returns one server-side page of items.
	List(ctx context.Context, params *ListParams) ([]Item, error)
	// Get looks an item up by title. Case and uniqueness semantics are the
	// server's contract.
	Get(ctx context.Context, title string) (*Item, error)
	// Create creates an item owned by the given user.
	Create(ctx context.Context, userID int, request *ItemCreateRequest) (*Item, error)
	// Update applies a partial update; unset fields are not sent.
	Update(ctx context.Context, itemID int, request *ItemUpdateRequest) (*Item, error)
	// Withdraw decrements stock by quantity. Negative-result policy is
	// server-side.
	Withdraw(ctx context.Context, itemID int, quantity int) (*Item, error)
	// Delete removes an item and returns its last known state.
	Delete(ctx context.Context, itemID int) (*Item, error)
}

// UsersClient provides access to the user endpoints.
type UsersClient interface {
	List(ctx context.Context, params *ListParams) ([]User, error)
	Get(ctx context.Context, userID int) (*User, error)
	// GetMe returns the account that owns the current session.
	GetMe(ctx context.Context) (*User, error)
	// Create registers a new account. Registration needs no session.
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Update(ctx context.Context, userID int, request *UserUpdateRequest) (*User, error)
	UpdateMe(ctx context.Context, request *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID int) (*User, error)
}

// SessionClient manages the client-held session credential.
type SessionClient interface {
	// Login exchanges credentials for a session token. On failure the
	// session is left exactly as it was.
	Login(ctx context.Context, username, password string) error
	// Logout clears the session.
	Logout()
	// Token returns the current session token, or nil before login.
	Token() *Token
}

// Client is the facade over the inventory backend: one method group per
// resource plus session management. All operations except Login and user
// registration require a prior successful Login and fail fast with
// ErrNotAuthenticated otherwise.
type Client interface {
	SessionClient

	Items() ItemsClient
	Users() UsersClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a tim.Client.
//
// # Timeouts and retries
//
// Each facade operation issues one blocking call and returns once a response
// or transport failure is available. Per-request deadlines are controlled via
// the context passed to client methods; HTTPTimeout bounds a single attempt.
// Retries are disabled by default. RetryMax > 0 enables retrying transient
// failures (connection errors, 5xx, 429); 4xx rejections are never retried.
type Config struct {
	// APIEndpoint: base URL for the inventory API
	// (e.g., "http://127.0.0.1:8000"). timclient.New normalizes this value
	// by trimming a trailing slash and adding "http://" if no scheme is
	// present.
	APIEndpoint string

	// Username and Password: if both are set, timclient.New performs a
	// login during construction so the client starts with a session.
	Username string
	Password string

	// AccessToken: a previously issued session token. If set, the client
	// starts authenticated without calling Login. TokenType defaults to
	// "bearer" when empty.
	AccessToken string
	TokenType   string

	// HTTPTimeout: timeout for a single HTTP attempt. Zero means the
	// transport default.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures. Zero
	// keeps the default single-attempt behavior.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Cache: optional read-path response cache. Nil disables caching.
	Cache *CacheConfig
}
