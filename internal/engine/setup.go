package engine

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/coup-go/internal/dependencies/random"
	"github.com/mcoot/coup-go/internal/model"
)

// StartingCoins is the purse every player starts with
const StartingCoins = 2

// NewGame deals a fresh game for participants. Cards are dealt in
// participant order before the seating order is shuffled.
func (e *Engine) NewGame(participants []model.Participant) (*model.GameState, error) {
	if len(participants) < model.MinPlayers || len(participants) > model.MaxPlayers {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidPlayerCount, len(participants))
	}
	seen := make(map[model.PlayerRef]bool, len(participants))
	for _, p := range participants {
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", model.ErrDuplicatePlayer, p.Name)
		}
		seen[p] = true
	}

	deck := model.FullDeck()
	random.Shuffle(e.random, deck)

	players := make([]model.GamePlayer, len(participants))
	for i, p := range participants {
		players[i] = model.GamePlayer{
			PlayerRef: p,
			Coins:     StartingCoins,
			Influences: [2]model.Influence{
				{Role: deck[0], Alive: true},
				{Role: deck[1], Alive: true},
			},
		}
		deck = deck[2:]
	}

	random.Shuffle(e.random, players)

	e.logger.Info("game dealt",
		slog.Int("player_count", len(players)),
		slog.String("first_player", players[0].Name),
	)

	return &model.GameState{
		Deck:          deck,
		Players:       players,
		Eliminated:    []model.GamePlayer{},
		CurrentPlayer: 0,
		Phase:         model.TurnPhase(players[0].Ref()),
		Log:           []string{},
	}, nil
}
