package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	DB "Backend-Procure/src/database"

	"github.com/redis/go-redis/v9"
)

// Drafts are a convenience cache, keyed by request id, so an interrupted edit
// can resume. They never outlive their TTL and are dropped on save.

const draftTTL = 7 * 24 * time.Hour

var ErrDraftNotFound = errors.New("draft not found")
var ErrCacheUnavailable = errors.New("draft cache unavailable")

func key(requestID string) string {
	return "draft:request:" + requestID
}

// Save stores the draft payload under the request id.
func Save(ctx context.Context, requestID string, payload any) error {
	if DB.RedisClient == nil {
		return ErrCacheUnavailable
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return DB.RedisClient.Set(ctx, key(requestID), b, draftTTL).Err()
}

// Load reads a draft into out.
func Load(ctx context.Context, requestID string, out any) error {
	if DB.RedisClient == nil {
		return ErrCacheUnavailable
	}
	b, err := DB.RedisClient.Get(ctx, key(requestID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrDraftNotFound
		}
		return err
	}
	return json.Unmarshal(b, out)
}

// Delete drops a draft. Deleting a missing draft is not an error.
func Delete(ctx context.Context, requestID string) error {
	if DB.RedisClient == nil {
		return nil
	}
	return DB.RedisClient.Del(ctx, key(requestID)).Err()
}
