package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/coup-go/internal/api/response"
	"github.com/mcoot/coup-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case response.AuthResponse:
		o.printAuthResult(v)
	case response.Room:
		o.printRoom(v)
	case response.GameView:
		o.printGame(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a response.AuthResponse) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format("2006-01-02 15:04:05"))
}

func (o *Output) printRoom(r response.Room) {
	fmt.Fprintf(o.w, "Room: %s\n", r.Code)
	fmt.Fprintf(o.w, "State: %s\n", r.State)
	if r.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", r.Winner.Name)
	}
	fmt.Fprintf(o.w, "Members (%d):\n", len(r.Members))
	for _, m := range r.Members {
		ownerStr := ""
		if m.IsOwner {
			ownerStr = " [owner]"
		}
		fmt.Fprintf(o.w, "  - %s (%s) %s%s\n", m.Name, m.PlayerID, m.Color, ownerStr)
	}
}

func (o *Output) printGame(g response.GameView) {
	fmt.Fprintf(o.w, "Room: %s (version %d)\n", g.RoomCode, g.Version)
	if g.You != nil {
		fmt.Fprintf(o.w, "You: %s\n", g.You.Name)
	}
	fmt.Fprintf(o.w, "Deck: %d cards\n", g.DeckSize)
	fmt.Fprintf(o.w, "Phase: %s\n", describePhase(g.Phase))

	fmt.Fprintln(o.w, "\nPlayers:")
	for _, p := range g.Players {
		marker := "  "
		if p.PlayerRef == g.CurrentPlayer {
			marker = "> "
		}
		fmt.Fprintf(o.w, "%s%-12s %2d coins  %s\n", marker, p.Name, p.Coins, describeInfluences(p.Influences))
	}
	for _, p := range g.Eliminated {
		fmt.Fprintf(o.w, "  %-12s out       %s\n", p.Name, describeInfluences(p.Influences))
	}

	if len(g.Log) > 0 {
		fmt.Fprintln(o.w, "\nLog:")
		start := max(len(g.Log)-10, 0)
		for _, line := range g.Log[start:] {
			fmt.Fprintf(o.w, "  %s\n", line)
		}
	}

	if g.Winner != nil {
		fmt.Fprintf(o.w, "\nWinner: %s\n", g.Winner.Name)
	}
}

func describePhase(p model.Phase) string {
	switch p.Kind {
	case model.PhaseWaitCounter:
		names := make([]string, len(p.Pending))
		for i, ref := range p.Pending {
			names[i] = ref.Name
		}
		return fmt.Sprintf("%s (%s) waiting on %s", p.Kind, p.Move.Description(), strings.Join(names, ", "))
	case model.PhaseShowInfluence:
		roles := make([]string, len(p.ProofList))
		for i, r := range p.ProofList {
			roles[i] = string(r)
		}
		return fmt.Sprintf("%s by %s, one of %s", p.Kind, p.Player.Name, strings.Join(roles, "/"))
	case model.PhaseExchangeInfluence:
		if len(p.Choices) > 0 {
			roles := make([]string, len(p.Choices))
			for i, r := range p.Choices {
				roles[i] = string(r)
			}
			return fmt.Sprintf("%s by %s, offered %s", p.Kind, p.Player.Name, strings.Join(roles, ", "))
		}
		return fmt.Sprintf("%s by %s", p.Kind, p.Player.Name)
	default:
		return fmt.Sprintf("%s (%s)", p.Kind, p.Player.Name)
	}
}

func describeInfluences(infs []response.InfluenceView) string {
	parts := make([]string, len(infs))
	for i, inf := range infs {
		role := string(inf.Role)
		if role == "" {
			role = "?"
		}
		if !inf.Alive {
			role = "x" + role
		}
		parts[i] = role
	}
	return strings.Join(parts, " ")
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	}
}
