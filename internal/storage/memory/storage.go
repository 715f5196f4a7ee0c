package memory

import (
	"context"
	"sync"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Rooms and games are copied in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	sessions          map[string]*model.Session
	rooms             map[model.RoomCode]*model.Room
	games             map[model.RoomCode]*model.Game

	// Serializes read-modify-write per room and per game
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		sessions:          make(map[string]*model.Session),
		rooms:             make(map[model.RoomCode]*model.Room),
		games:             make(map[model.RoomCode]*model.Game),
		locks:             make(map[string]*sync.Mutex),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) lock(key string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.Token] = &sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	unlock := s.lock("room:" + string(code))
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

func (s *Storage) UpdateRoom(ctx context.Context, code model.RoomCode, fn storage.RoomUpdate) (*model.Room, error) {
	unlock := s.lock("room:" + string(code))
	defer unlock()

	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := fn(room); err != nil {
		return nil, err
	}
	if err := s.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.RoomCode]; ok {
		return model.ErrGameInProgress
	}
	s.games[game.RoomCode] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, code model.RoomCode) error {
	unlock := s.lock("game:" + string(code))
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, code)
	return nil
}

func (s *Storage) UpdateGame(ctx context.Context, code model.RoomCode, fn storage.GameUpdate) (*model.Game, error) {
	unlock := s.lock("game:" + string(code))
	defer unlock()

	game, err := s.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := fn(game); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.games[code] = game.Clone()
	s.mu.Unlock()
	return game, nil
}
