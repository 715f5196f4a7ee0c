package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ann = PlayerRef{Name: "Ann", Color: "#E74C3C"}
	ben = PlayerRef{Name: "Ben", Color: "#3498DB"}
)

func TestMoveDescription(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Income(ann), "Ann collected income (1 coin)"},
		{ForeignAid(ann), "Ann collected foreign aid (2 coins)"},
		{Tax(ann), "Ann collected tax (3 coins)"},
		{Exchange(ann), "Ann exchanged their roles"},
		{Steal(ann, ben), "Ann stole from Ben (2 coins)"},
		{Assassinate(ann, ben), "Ann shot Ben"},
		{Coup(ann, ben), "Ann overthrew Ben"},
		{Challenge(ben, Tax(ann)), `Ben challenged "Ann collected tax (3 coins)"`},
		{Pass(ben, Tax(ann)), `Ben passed "Ann collected tax (3 coins)"`},
		{Block(ben, Steal(ann, ben)), `Ben blocked "Ann stole from Ben (2 coins)"`},
		{Surrender(ben, RoleGeneral), "Ben surrendered their GENERAL role"},
		{Show(ann, RolePolitician, Challenge(ben, Tax(ann))), "Ann showed their POLITICIAN role"},
	}

	for _, tt := range tests {
		t.Run(string(tt.move.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.move.Description())
		})
	}
}

func TestMovePredicates(t *testing.T) {
	challengeable := map[MoveKind]bool{MoveTax: true, MoveExchange: true, MoveSteal: true, MoveAssassinate: true, MoveBlock: true}
	blockable := map[MoveKind]bool{MoveForeignAid: true, MoveSteal: true, MoveAssassinate: true}

	for _, m := range []Move{
		Income(ann), ForeignAid(ann), Tax(ann), Exchange(ann), Steal(ann, ben),
		Assassinate(ann, ben), Coup(ann, ben), Challenge(ben, Tax(ann)), Pass(ben, Tax(ann)),
		Block(ben, ForeignAid(ann)), Surrender(ann, RoleSniper), Show(ann, RoleSniper, Challenge(ben, Tax(ann))),
	} {
		assert.Equal(t, challengeable[m.Kind], m.IsChallengeable(), m.Kind)
		assert.Equal(t, blockable[m.Kind], m.IsBlockable(), m.Kind)
		assert.True(t, m.Kind.Valid())
	}
	assert.False(t, MoveKind("bribe").Valid())
}

func TestProofList(t *testing.T) {
	assert.Equal(t, []Role{RoleSniper}, Assassinate(ann, ben).ProofList())
	assert.Equal(t, []Role{RoleDiplomat}, Exchange(ann).ProofList())
	assert.Equal(t, []Role{RoleGeneral}, Steal(ann, ben).ProofList())
	assert.Equal(t, []Role{RolePolitician}, Tax(ann).ProofList())
	assert.Equal(t, []Role{RoleBodyguard}, Block(ben, Assassinate(ann, ben)).ProofList())
	assert.Equal(t, []Role{RolePolitician}, Block(ben, ForeignAid(ann)).ProofList())
	assert.Equal(t, []Role{RoleDiplomat, RoleGeneral}, Block(ben, Steal(ann, ben)).ProofList())
	assert.Empty(t, Income(ann).ProofList())
	assert.Empty(t, Coup(ann, ben).ProofList())
}

func TestMoveEqual(t *testing.T) {
	assert.True(t, Tax(ann).Equal(Tax(ann)))
	assert.False(t, Tax(ann).Equal(Tax(ben)))
	assert.True(t, Steal(ann, ben).Equal(Steal(ann, ben)))
	assert.False(t, Steal(ann, ben).Equal(Steal(ben, ann)))
	assert.True(t, Block(ben, Steal(ann, ben)).Equal(Block(ben, Steal(ann, ben))))
	assert.False(t, Block(ben, Steal(ann, ben)).Equal(Block(ben, Assassinate(ann, ben))))
	assert.False(t, Challenge(ben, Tax(ann)).Equal(Pass(ben, Tax(ann))))
	assert.True(t, Exchange(ann).Equal(Move{Kind: MoveExchange, Player: ann, Changes: []RoleChange{}}))
	assert.False(t, Exchange(ann, RoleChange{Old: RoleSniper, New: RoleGeneral}).Equal(Exchange(ann)))
}

func TestMoveCloneIsDeep(t *testing.T) {
	orig := Block(ben, Steal(ann, ben))
	c := orig.Clone()
	c.Action.Victim.Name = "Zed"

	assert.Equal(t, "Ben", orig.Action.Victim.Name)
}

func TestMoveJSONRoundTrip(t *testing.T) {
	orig := Show(ann, RolePolitician, Challenge(ben, Block(ann, Steal(ben, ann))))

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Move
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, orig.Equal(decoded))
}

func TestGameStateCloneIsIndependent(t *testing.T) {
	tax := Tax(ann)
	g := &GameState{
		Deck: []Role{RoleSniper},
		Players: []GamePlayer{
			{PlayerRef: ann, Coins: 2, Influences: [2]Influence{{RolePolitician, true}, {RoleGeneral, true}}},
			{PlayerRef: ben, Coins: 2, Influences: [2]Influence{{RoleSniper, true}, {RoleGeneral, true}}},
		},
		Phase: WaitCounterPhase([]PlayerRef{ben}, tax),
		Log:   []string{"Attempt: Ann collected tax (3 coins)"},
	}

	c := g.Clone()
	c.Deck[0] = RoleBodyguard
	c.Players[0].Coins = 9
	c.Players[1].Influences[0].Alive = false
	c.Phase.Pending[0] = ann
	c.Phase.Move.Player = ben
	c.Log[0] = "changed"

	assert.Equal(t, RoleSniper, g.Deck[0])
	assert.Equal(t, 2, g.Players[0].Coins)
	assert.True(t, g.Players[1].Influences[0].Alive)
	assert.Equal(t, []PlayerRef{ben}, g.Phase.Pending)
	assert.Equal(t, ann, g.Phase.Move.Player)
	assert.Equal(t, "Attempt: Ann collected tax (3 coins)", g.Log[0])
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	g := &GameState{
		Deck: []Role{RoleSniper, RoleDiplomat},
		Players: []GamePlayer{
			{PlayerRef: ann, Coins: 3, Influences: [2]Influence{{RolePolitician, true}, {RoleGeneral, false}}},
			{PlayerRef: ben, Coins: 1, Influences: [2]Influence{{RoleSniper, true}, {RoleGeneral, true}}},
		},
		Eliminated:    []GamePlayer{},
		CurrentPlayer: 1,
		Phase:         ExchangeInfluencePhase(ben, []Role{RoleBodyguard, RoleBodyguard}, Exchange(ben)),
		Log:           []string{"Ben exchanged their roles"},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"exchange_influence"`)
	assert.Contains(t, string(data), `"name":"Ann"`)

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, g, &decoded)
}

func TestFullDeckHasThreeOfEachRole(t *testing.T) {
	deck := FullDeck()
	require.Len(t, deck, 15)

	counts := map[Role]int{}
	for _, r := range deck {
		counts[r]++
	}
	for _, r := range AllRoles() {
		assert.Equal(t, CopiesPerRole, counts[r])
		assert.True(t, r.Valid())
		assert.NotEmpty(t, r.Color())
	}
	assert.False(t, Role("JESTER").Valid())
}

func TestRemoveRole(t *testing.T) {
	roles := []Role{RoleSniper, RoleGeneral, RoleSniper}

	out, ok := RemoveRole(roles, RoleSniper)
	assert.True(t, ok)
	assert.Equal(t, []Role{RoleGeneral, RoleSniper}, out)
	assert.Equal(t, []Role{RoleSniper, RoleGeneral, RoleSniper}, roles)

	_, ok = RemoveRole(roles, RoleBodyguard)
	assert.False(t, ok)
}
