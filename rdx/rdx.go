package rdx

import (
	"log"
	"os"
	"time"

	"mappa/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,                           // Default DB
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// MarkSeen records a presence heartbeat for a user in a workspace. The key
// expires on its own, so absence of the key doubles as a soft offline signal.
func MarkSeen(workspaceID, userID string, ttl time.Duration) {
	key := "presence:" + workspaceID + ":" + userID
	if err := SetWithExpiry(key, time.Now().UTC().Format(time.RFC3339), ttl); err != nil {
		log.Println("Failed to record presence heartbeat:", err)
	}
}
