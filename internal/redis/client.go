package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// ChatTurn is one message/response pair kept in a session's rolling history.
type ChatTurn struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession is an opaque login token's payload.
type AuthSession struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Chat session history

const maxChatTurns = 6

func (c *Client) AppendChatTurn(sessionID string, turn ChatTurn, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal chat turn: %w", err)
	}

	key := "chat:" + sessionID
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, jsonData)
	pipe.LTrim(ctx, key, -maxChatTurns, -1)
	pipe.Expire(ctx, key, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *Client) GetChatHistory(sessionID string) ([]ChatTurn, error) {
	ctx := context.Background()
	vals, err := c.rdb.LRange(ctx, "chat:"+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	turns := make([]ChatTurn, 0, len(vals))
	for _, val := range vals {
		var turn ChatTurn
		if err := json.Unmarshal([]byte(val), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Auth sessions

func (c *Client) SetAuthSession(token string, session *AuthSession, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	return c.rdb.Set(ctx, "auth:"+token, jsonData, ttl).Err()
}

func (c *Client) GetAuthSession(token string) (*AuthSession, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "auth:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get auth session: %w", err)
	}

	var session AuthSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

func (c *Client) DeleteAuthSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "auth:"+token).Err()
}

// Generic short-lived cache, used for the assistant's menu context.

func (c *Client) SetCached(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cached value: %w", err)
	}
	return c.rdb.Set(ctx, "cache:"+key, jsonData, ttl).Err()
}

func (c *Client) GetCached(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cache:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("cache miss")
		}
		return fmt.Errorf("failed to get cached value: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteCached(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cache:"+key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
