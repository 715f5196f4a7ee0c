package model

import "time"

// PhaseKind identifies what the game is waiting for
type PhaseKind string

const (
	PhaseTurn              PhaseKind = "turn"               // Player must declare an action
	PhaseWaitCounter       PhaseKind = "wait_counter"       // Pending players may pass, challenge or block Move
	PhaseWaitSurrender     PhaseKind = "wait_surrender"     // Player must give up an influence because of Move
	PhaseShowInfluence     PhaseKind = "show_influence"     // Player must reveal a role from ProofList
	PhaseExchangeInfluence PhaseKind = "exchange_influence" // Player picks roles from Choices
	PhaseGameOver          PhaseKind = "game_over"          // Player has won
)

// Phase is the current state of the turn state machine
type Phase struct {
	Kind      PhaseKind   `json:"kind"`
	Player    PlayerRef   `json:"player"`
	Pending   []PlayerRef `json:"pending,omitempty"`
	Move      *Move       `json:"move,omitempty"`
	ProofList []Role      `json:"proof_list,omitempty"`
	Choices   []Role      `json:"choices,omitempty"`
}

func TurnPhase(p PlayerRef) Phase {
	return Phase{Kind: PhaseTurn, Player: p}
}

func WaitCounterPhase(pending []PlayerRef, move Move) Phase {
	return Phase{Kind: PhaseWaitCounter, Pending: pending, Move: &move}
}

func WaitSurrenderPhase(victim PlayerRef, cause Move) Phase {
	return Phase{Kind: PhaseWaitSurrender, Player: victim, Move: &cause}
}

func ShowInfluencePhase(p PlayerRef, challenge Move, proof []Role) Phase {
	return Phase{Kind: PhaseShowInfluence, Player: p, Move: &challenge, ProofList: proof}
}

func ExchangeInfluencePhase(p PlayerRef, choices []Role, source Move) Phase {
	return Phase{Kind: PhaseExchangeInfluence, Player: p, Choices: choices, Move: &source}
}

func GameOverPhase(winner PlayerRef) Phase {
	return Phase{Kind: PhaseGameOver, Player: winner}
}

// Clone returns a deep copy of the phase
func (p Phase) Clone() Phase {
	out := p
	if p.Pending != nil {
		out.Pending = append([]PlayerRef(nil), p.Pending...)
	}
	if p.Move != nil {
		m := p.Move.Clone()
		out.Move = &m
	}
	if p.ProofList != nil {
		out.ProofList = append([]Role(nil), p.ProofList...)
	}
	if p.Choices != nil {
		out.Choices = append([]Role(nil), p.Choices...)
	}
	return out
}

// IsPending returns true if ref still has to respond in a WaitCounter phase
func (p Phase) IsPending(ref PlayerRef) bool {
	for _, r := range p.Pending {
		if r == ref {
			return true
		}
	}
	return false
}

// GameState is the full snapshot of a game in progress. The engine never
// mutates a GameState; every accepted move produces a new one.
type GameState struct {
	Deck          []Role       `json:"deck"`
	Players       []GamePlayer `json:"players"`
	Eliminated    []GamePlayer `json:"eliminated"` // Removed players, both influences dead
	CurrentPlayer int          `json:"current_player"`
	Phase         Phase        `json:"phase"`
	Log           []string     `json:"log"`
}

// Clone returns a deep copy of the state
func (g *GameState) Clone() *GameState {
	return &GameState{
		Deck:          append([]Role{}, g.Deck...),
		Players:       append([]GamePlayer{}, g.Players...),
		Eliminated:    append([]GamePlayer{}, g.Eliminated...),
		CurrentPlayer: g.CurrentPlayer,
		Phase:         g.Phase.Clone(),
		Log:           append([]string{}, g.Log...),
	}
}

// PlayerIndex returns the seat index of ref, or -1 if not in the game
func (g *GameState) PlayerIndex(ref PlayerRef) int {
	for i, p := range g.Players {
		if p.Is(ref) {
			return i
		}
	}
	return -1
}

// Player returns the seated player identified by ref
func (g *GameState) Player(ref PlayerRef) (*GamePlayer, bool) {
	idx := g.PlayerIndex(ref)
	if idx < 0 {
		return nil, false
	}
	return &g.Players[idx], true
}

// Refs returns the identities of all seated players in turn order
func (g *GameState) Refs() []PlayerRef {
	refs := make([]PlayerRef, len(g.Players))
	for i, p := range g.Players {
		refs[i] = p.Ref()
	}
	return refs
}

// RefsExcept returns all seated players other than ref, in turn order
func (g *GameState) RefsExcept(ref PlayerRef) []PlayerRef {
	refs := make([]PlayerRef, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.Is(ref) {
			refs = append(refs, p.Ref())
		}
	}
	return refs
}

// IsOver returns true once a winner has been decided
func (g *GameState) IsOver() bool {
	return g.Phase.Kind == PhaseGameOver
}

// Winner returns the winner of a finished game
func (g *GameState) Winner() (PlayerRef, bool) {
	if !g.IsOver() {
		return PlayerRef{}, false
	}
	return g.Phase.Player, true
}

// CardCount tallies every card in the deck, in player slots (alive or dead,
// eliminated players included) and held aside as exchange choices. For any
// reachable state every role counts CopiesPerRole.
func CardCount(g *GameState) map[Role]int {
	counts := make(map[Role]int)
	for _, r := range g.Deck {
		counts[r]++
	}
	for _, players := range [][]GamePlayer{g.Players, g.Eliminated} {
		for _, p := range players {
			for _, inf := range p.Influences {
				counts[inf.Role]++
			}
		}
	}
	if g.Phase.Kind == PhaseExchangeInfluence {
		for _, r := range g.Phase.Choices {
			counts[r]++
		}
		// A role shown to win a challenge is already back in the deck while
		// its slot waits for the replacement card.
		if g.Phase.Move != nil && g.Phase.Move.Kind == MoveShow {
			counts[g.Phase.Move.Role]--
		}
	}
	return counts
}

// Game is the persisted record of a room's game
type Game struct {
	RoomCode  RoomCode
	State     GameState
	Version   int64 // Incremented on every accepted move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the game record
func (g *Game) Clone() *Game {
	out := *g
	out.State = *g.State.Clone()
	return &out
}
