package game

import "github.com/mcoot/coup-go/internal/model"

// View is a game with hidden information removed for one viewer
type View struct {
	RoomCode      model.RoomCode   `json:"room_code"`
	Version       int64            `json:"version"`
	You           *model.PlayerRef `json:"you,omitempty"`
	Players       []PlayerView     `json:"players"`
	Eliminated    []PlayerView     `json:"eliminated"`
	CurrentPlayer model.PlayerRef  `json:"current_player"`
	DeckSize      int              `json:"deck_size"`
	Phase         model.Phase      `json:"phase"`
	Winner        *model.PlayerRef `json:"winner,omitempty"`
	Log           []string         `json:"log"`
}

// PlayerView is a seat with face-down roles hidden from other players
type PlayerView struct {
	model.PlayerRef
	Coins      int             `json:"coins"`
	Influences []InfluenceView `json:"influences"`
}

// InfluenceView is an influence slot; Role is empty when hidden
type InfluenceView struct {
	Role  model.Role `json:"role,omitempty"`
	Alive bool       `json:"alive"`
}

// NewView redacts game for viewer. A nil viewer sees only public information.
func NewView(game *model.Game, viewer *model.PlayerRef) *View {
	state := &game.State
	v := &View{
		RoomCode:   game.RoomCode,
		Version:    game.Version,
		You:        viewer,
		Players:    make([]PlayerView, len(state.Players)),
		Eliminated: make([]PlayerView, len(state.Eliminated)),
		DeckSize:   len(state.Deck),
		Phase:      state.Phase.Clone(),
		Log:        append([]string{}, state.Log...),
	}
	for i, p := range state.Players {
		v.Players[i] = redactPlayer(p, viewer)
	}
	for i, p := range state.Eliminated {
		v.Eliminated[i] = redactPlayer(p, viewer)
	}
	if state.CurrentPlayer < len(state.Players) {
		v.CurrentPlayer = state.Players[state.CurrentPlayer].Ref()
	}
	if winner, ok := state.Winner(); ok {
		v.Winner = &winner
	}
	if v.Phase.Kind == model.PhaseExchangeInfluence && (viewer == nil || *viewer != v.Phase.Player) {
		v.Phase.Choices = nil
	}
	return v
}

func redactPlayer(p model.GamePlayer, viewer *model.PlayerRef) PlayerView {
	own := viewer != nil && p.Is(*viewer)
	pv := PlayerView{
		PlayerRef:  p.Ref(),
		Coins:      p.Coins,
		Influences: make([]InfluenceView, len(p.Influences)),
	}
	for i, inf := range p.Influences {
		pv.Influences[i] = InfluenceView{Alive: inf.Alive}
		if own || !inf.Alive {
			pv.Influences[i].Role = inf.Role
		}
	}
	return pv
}
