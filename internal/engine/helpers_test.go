package engine

import (
	"math/rand/v2"

	"github.com/mcoot/coup-go/internal/model"
)

var (
	alice = model.PlayerRef{Name: "Alice", Color: "#E74C3C"}
	bob   = model.PlayerRef{Name: "Bob", Color: "#3498DB"}
	carol = model.PlayerRef{Name: "Carol", Color: "#2ECC71"}
	dave  = model.PlayerRef{Name: "Dave", Color: "#F1C40F"}
	erin  = model.PlayerRef{Name: "Erin", Color: "#9B59B6"}
	frank = model.PlayerRef{Name: "Frank", Color: "#E67E22"}

	everyone = []model.PlayerRef{alice, bob, carol, dave, erin, frank}
)

const (
	politician = model.RolePolitician
	sniper     = model.RoleSniper
	diplomat   = model.RoleDiplomat
	general    = model.RoleGeneral
	bodyguard  = model.RoleBodyguard
)

func seat(ref model.PlayerRef, coins int, first, second model.Role) model.GamePlayer {
	return model.GamePlayer{
		PlayerRef: ref,
		Coins:     coins,
		Influences: [2]model.Influence{
			{Role: first, Alive: true},
			{Role: second, Alive: true},
		},
	}
}

func dead(p model.GamePlayer, slot int) model.GamePlayer {
	p.Influences[slot].Alive = false
	return p
}

// build creates a state whose deck holds whatever the seats leave over
func build(phase model.Phase, current int, players ...model.GamePlayer) *model.GameState {
	deck := model.FullDeck()
	for _, p := range players {
		for _, inf := range p.Influences {
			deck, _ = model.RemoveRole(deck, inf.Role)
		}
	}
	if phase.Kind == model.PhaseExchangeInfluence {
		for _, r := range phase.Choices {
			deck, _ = model.RemoveRole(deck, r)
		}
	}
	return &model.GameState{
		Deck:          deck,
		Players:       players,
		Eliminated:    []model.GamePlayer{},
		CurrentPlayer: current,
		Phase:         phase,
		Log:           []string{},
	}
}

// seededRandom is a reproducible random source for playouts
type seededRandom struct {
	rng *rand.Rand
}

func newSeededRandom(seed uint64) *seededRandom {
	return &seededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (r *seededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

func (r *seededRandom) String(length int, alphabet string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.rng.IntN(len(alphabet))]
	}
	return string(b)
}

// legalMoves lists every move the current phase accepts
func legalMoves(g *model.GameState) []model.Move {
	var moves []model.Move
	phase := g.Phase

	switch phase.Kind {
	case model.PhaseTurn:
		actor, _ := g.Player(phase.Player)
		others := g.RefsExcept(phase.Player)
		if actor.Coins >= 10 {
			for _, v := range others {
				moves = append(moves, model.Coup(actor.Ref(), v))
			}
			return moves
		}
		moves = append(moves,
			model.Income(actor.Ref()),
			model.ForeignAid(actor.Ref()),
			model.Tax(actor.Ref()),
			model.Exchange(actor.Ref()),
		)
		for _, v := range others {
			moves = append(moves, model.Steal(actor.Ref(), v))
			if actor.Coins >= AssassinateCost {
				moves = append(moves, model.Assassinate(actor.Ref(), v))
			}
			if actor.Coins >= CoupCost {
				moves = append(moves, model.Coup(actor.Ref(), v))
			}
		}

	case model.PhaseWaitCounter:
		source := *phase.Move
		for _, q := range phase.Pending {
			moves = append(moves, model.Pass(q, source))
			if source.IsChallengeable() {
				moves = append(moves, model.Challenge(q, source))
			}
			if source.IsBlockable() {
				moves = append(moves, model.Block(q, source))
			}
		}

	case model.PhaseWaitSurrender:
		victim, _ := g.Player(phase.Player)
		for _, r := range victim.AliveRoles() {
			moves = append(moves, model.Surrender(victim.Ref(), r))
		}

	case model.PhaseShowInfluence:
		p, _ := g.Player(phase.Player)
		for _, r := range phase.ProofList {
			if p.HasAlive(r) {
				moves = append(moves, model.Show(p.Ref(), r, *phase.Move))
			}
		}

	case model.PhaseExchangeInfluence:
		p, _ := g.Player(phase.Player)
		source := *phase.Move
		if source.Kind == model.MoveShow {
			return []model.Move{model.Exchange(p.Ref(), model.RoleChange{Old: source.Role, New: phase.Choices[0]})}
		}
		moves = append(moves, model.Exchange(p.Ref()))
		alive := p.AliveRoles()
		for _, old := range alive {
			for _, c := range phase.Choices {
				moves = append(moves, model.Exchange(p.Ref(), model.RoleChange{Old: old, New: c}))
			}
		}
		if len(alive) == 2 && len(phase.Choices) == 2 {
			moves = append(moves,
				model.Exchange(p.Ref(),
					model.RoleChange{Old: alive[0], New: phase.Choices[0]},
					model.RoleChange{Old: alive[1], New: phase.Choices[1]},
				),
				model.Exchange(p.Ref(),
					model.RoleChange{Old: alive[0], New: phase.Choices[1]},
					model.RoleChange{Old: alive[1], New: phase.Choices[0]},
				),
			)
		}
	}
	return moves
}
