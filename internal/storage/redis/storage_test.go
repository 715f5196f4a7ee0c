package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.SessionTTL = time.Hour
	cfg.RoomTTL = time.Hour
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newGame(code model.RoomCode) *model.Game {
	ann := model.PlayerRef{Name: "Ann", Color: "#E74C3C"}
	ben := model.PlayerRef{Name: "Ben", Color: "#3498DB"}
	return &model.Game{
		RoomCode: code,
		State: model.GameState{
			Deck: []model.Role{model.RoleSniper},
			Players: []model.GamePlayer{
				{PlayerRef: ann, Coins: 2, Influences: [2]model.Influence{{Role: model.RoleGeneral, Alive: true}, {Role: model.RoleDiplomat, Alive: true}}},
				{PlayerRef: ben, Coins: 2, Influences: [2]model.Influence{{Role: model.RoleBodyguard, Alive: true}, {Role: model.RoleSniper, Alive: false}}},
			},
			Eliminated: []model.GamePlayer{},
			Phase:      model.WaitCounterPhase([]model.PlayerRef{ben}, model.Steal(ann, ben)),
			Log:        []string{"Attempt: Ann stole from Ben (2 coins)"},
		},
		CreatedAt: time.Now(),
	}
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
	s.Equal("hash123", retrieved.PasswordHash)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestSessionRoundTripWithTTL() {
	session := &model.Session{
		Token:    "sess_1",
		PlayerID: "player-1",
		Player:   model.Player{ID: "player-1", DisplayName: "Alice", IsGuest: true},
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "sess_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
	s.True(retrieved.Player.IsGuest)
	s.True(s.mini.TTL(sessionKey("sess_1")) > 0, "Session should have TTL")

	s.mini.FastForward(2 * time.Hour)
	_, err = s.storage.GetSession(s.ctx, "sess_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_1"})

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess_1"))

	_, err := s.storage.GetSession(s.ctx, "sess_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	winner := model.PlayerRef{Name: "Alice", Color: model.PlayerColors[0]}
	room := &model.Room{
		Code:    "ABCDEFGH",
		OwnerID: "player-1",
		State:   model.RoomStateFinished,
		Members: []model.RoomMember{{PlayerID: "player-1", Name: "Alice", Color: model.PlayerColors[0]}},
		Winner:  &winner,
	}

	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	retrieved, err := s.storage.GetRoom(s.ctx, "ABCDEFGH")
	s.Require().NoError(err)
	s.Equal(room.Members, retrieved.Members)
	s.Equal(winner, *retrieved.Winner)
	s.True(s.mini.TTL(roomKey(room.Code)) > 0, "Room should have TTL")
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NONEXIST")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExistsAndDelete() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCDEFGH", State: model.RoomStateWaiting})

	exists, err := s.storage.RoomExists(s.ctx, "ABCDEFGH")
	s.Require().NoError(err)
	s.True(exists)

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABCDEFGH"))

	exists, err = s.storage.RoomExists(s.ctx, "ABCDEFGH")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestUpdateRoom() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABCDEFGH", State: model.RoomStateWaiting})

	updated, err := s.storage.UpdateRoom(s.ctx, "ABCDEFGH", func(room *model.Room) error {
		room.Members = append(room.Members, model.RoomMember{PlayerID: "player-2", Name: "Bob"})
		return nil
	})
	s.Require().NoError(err)
	s.Len(updated.Members, 1)

	retrieved, _ := s.storage.GetRoom(s.ctx, "ABCDEFGH")
	s.Len(retrieved.Members, 1)
}

func (s *StorageSuite) TestUpdateRoomNotFound() {
	_, err := s.storage.UpdateRoom(s.ctx, "NONEXIST", func(*model.Room) error { return nil })
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	game := newGame("ABCDEFGH")

	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "ABCDEFGH")
	s.Require().NoError(err)
	s.Equal(game.State, retrieved.State)
	s.True(s.mini.TTL(gameKey("ABCDEFGH")) > 0, "Game should have TTL")
}

func (s *StorageSuite) TestCreateGameTwiceFails() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, newGame("ABCDEFGH")))

	err := s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "NONEXIST")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestUpdateGame() {
	_ = s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))

	updated, err := s.storage.UpdateGame(s.ctx, "ABCDEFGH", func(game *model.Game) error {
		game.Version++
		game.State.Players[0].Coins += 2
		return nil
	})
	s.Require().NoError(err)
	s.Equal(int64(1), updated.Version)

	retrieved, _ := s.storage.GetGame(s.ctx, "ABCDEFGH")
	s.Equal(int64(1), retrieved.Version)
	s.Equal(4, retrieved.State.Players[0].Coins)
}

func (s *StorageSuite) TestUpdateGameAbortsOnError() {
	_ = s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))
	boom := errors.New("boom")

	_, err := s.storage.UpdateGame(s.ctx, "ABCDEFGH", func(game *model.Game) error {
		game.Version = 42
		return boom
	})
	s.ErrorIs(err, boom)

	retrieved, _ := s.storage.GetGame(s.ctx, "ABCDEFGH")
	s.Equal(int64(0), retrieved.Version)
}

func (s *StorageSuite) TestUpdateGameRetriesAfterConcurrentWrite() {
	_ = s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))

	calls := 0
	updated, err := s.storage.UpdateGame(s.ctx, "ABCDEFGH", func(game *model.Game) error {
		calls++
		if calls == 1 {
			// Another process wins the race
			other := newGame("ABCDEFGH")
			other.Version = 10
			s.Require().NoError(s.storage.client.Set(s.ctx, gameKey("ABCDEFGH"), mustJSON(other), 0).Err())
		}
		game.Version++
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, calls)
	s.Equal(int64(11), updated.Version)
}

func (s *StorageSuite) TestUpdateGameGivesUpAfterMaxRetries() {
	s.storage.cfg.MaxTxRetries = 3
	_ = s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))

	calls := 0
	_, err := s.storage.UpdateGame(s.ctx, "ABCDEFGH", func(game *model.Game) error {
		calls++
		s.Require().NoError(s.storage.client.Set(s.ctx, gameKey("ABCDEFGH"), mustJSON(game), 0).Err())
		return nil
	})
	s.ErrorIs(err, storage.ErrConflict)
	s.Equal(3, calls)
}

func (s *StorageSuite) TestUpdateGameConcurrentWritersAllLand() {
	_ = s.storage.CreateGame(s.ctx, newGame("ABCDEFGH"))
	s.storage.cfg.MaxTxRetries = 100

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.storage.UpdateGame(s.ctx, "ABCDEFGH", func(game *model.Game) error {
				game.Version++
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	game, err := s.storage.GetGame(s.ctx, "ABCDEFGH")
	s.Require().NoError(err)
	s.Equal(int64(20), game.Version)
}
