package session

import (
	"admin_panel/internal/utils" // Redis cache helpers
	"context"                    // Context for Redis operations
	"encoding/json"              // JSON encoding of the user projection
	"strconv"                    // Key construction
	"time"                       // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Clock abstracts time so expiry logic is testable without real time passing
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Record is the per-user session payload: the issued token, the redacted user
// projection, and an advisory expiry in unix milliseconds. It mirrors what
// the browser keeps in local storage; the JWT's own expiry remains the real
// enforcement point on every request.
type Record struct {
	Token  string          `json:"token"`  // Issued JWT
	User   json.RawMessage `json:"user"`   // Redacted user projection, no password hash
	Expiry int64           `json:"expiry"` // Unix milliseconds
}

// Store keeps one session record per user id in Redis
type Store struct {
	rdb   *redis.Client
	clock Clock
}

// NewStore builds a session store using the system clock
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, clock: systemClock{}}
}

// NewStoreWithClock builds a session store with an injected clock (tests)
func NewStoreWithClock(rdb *redis.Client, clock Clock) *Store {
	return &Store{rdb: rdb, clock: clock}
}

func sessionKey(userID uint) string {
	return "session:user:" + strconv.FormatUint(uint64(userID), 10)
}

// Save stores a session record for the user with expiry now+ttl. The Redis
// key carries the same TTL, so abandoned sessions disappear on their own.
func (s *Store) Save(ctx context.Context, userID uint, token string, user any, ttl time.Duration) error {
	userJSON, err := json.Marshal(user) // Marshal the redacted user projection
	if err != nil {
		return err
	}
	rec := Record{
		Token:  token,
		User:   userJSON,
		Expiry: s.clock.Now().Add(ttl).UnixMilli(), // Advisory expiry
	}
	return utils.SetCache(ctx, s.rdb, sessionKey(userID), rec, ttl)
}

// Load returns the user's session record. A record whose expiry has lapsed
// according to the store's clock is cleared and reported as missing.
func (s *Store) Load(ctx context.Context, userID uint) (*Record, bool, error) {
	var rec Record
	found, err := utils.GetCache(ctx, s.rdb, sessionKey(userID), &rec)
	if err != nil || !found {
		return nil, false, err
	}
	if s.clock.Now().UnixMilli() > rec.Expiry {
		_ = utils.DeleteCache(ctx, s.rdb, sessionKey(userID)) // Expired, drop it
		return nil, false, nil
	}
	return &rec, true, nil
}

// Clear removes the user's session record (logout)
func (s *Store) Clear(ctx context.Context, userID uint) error {
	return utils.DeleteCache(ctx, s.rdb, sessionKey(userID))
}
