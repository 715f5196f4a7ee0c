package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Several server processes may share one Redis; updates to a room or game
// use optimistic WATCH/MULTI transactions.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Client returns the underlying connection, shared with event publishing
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, registeredPlayerKey(playerID), &rp, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := s.getJSON(ctx, sessionKey(token), &session, model.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, roomKey(room.Code), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	var room model.Room
	if err := s.getJSON(ctx, roomKey(code), &room, model.ErrRoomNotFound); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, roomKey(code)).Err()
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, code model.RoomCode, fn storage.RoomUpdate) (*model.Room, error) {
	var room model.Room
	err := s.update(ctx, roomKey(code), s.cfg.RoomTTL, model.ErrRoomNotFound, func(data []byte) ([]byte, error) {
		room = model.Room{}
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, err
		}
		if err := fn(&room); err != nil {
			return nil, err
		}
		return json.Marshal(&room)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, gameKey(game.RoomCode), data, s.cfg.GameTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrGameInProgress
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, gameKey(code), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, gameKey(code)).Err()
}

func (s *Storage) UpdateGame(ctx context.Context, code model.RoomCode, fn storage.GameUpdate) (*model.Game, error) {
	var game model.Game
	err := s.update(ctx, gameKey(code), s.cfg.GameTTL, model.ErrGameNotFound, func(data []byte) ([]byte, error) {
		game = model.Game{}
		if err := json.Unmarshal(data, &game); err != nil {
			return nil, err
		}
		if err := fn(&game); err != nil {
			return nil, err
		}
		return json.Marshal(&game)
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// getJSON loads key into v, mapping a missing key to notFound
func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// update rewrites key from its current value inside a WATCH transaction.
// A concurrent write to key aborts the attempt and apply runs again on the
// fresh value, up to MaxTxRetries times.
func (s *Storage) update(ctx context.Context, key string, ttl time.Duration, notFound error, apply func([]byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return notFound
			}
			return err
		}

		out, err := apply(data)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, ttl)
			return nil
		})
		return err
	}

	retries := max(s.cfg.MaxTxRetries, 1)
	for attempt := 0; attempt < retries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return storage.ErrConflict
}
