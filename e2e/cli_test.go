package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/coup-go/internal/api"
	"github.com/mcoot/coup-go/internal/api/response"
	"github.com/mcoot/coup-go/internal/factory"
	"github.com/mcoot/coup-go/internal/model"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "coupctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/coupctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Storage:        app.Storage,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		ServerName:     "e2e",
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			app.HubManager.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

type messageResponse struct {
	Message string `json:"message"`
}

func decodeOutput[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	resp := decodeOutput[response.Health](t, output)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "e2e", resp.Server)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	authResp := decodeOutput[response.AuthResponse](t, output)
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	player := decodeOutput[response.Player](t, output)
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Logout forgets the token
	output, err = cli.run("player", "logout")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("player", "me")
	assert.Error(t, err)
}

func TestCLI_RoomCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	token := decodeOutput[response.AuthResponse](t, output).SessionToken

	// Create room
	output, err = cli.runWithToken(token, "room", "create")
	require.NoError(t, err, "output: %s", output)

	room := decodeOutput[response.Room](t, output)
	assert.Equal(t, "waiting", room.State)
	require.Len(t, room.Members, 1)
	assert.True(t, room.Members[0].IsOwner)

	// Get room, codes are case-insensitive on the command line
	output, err = cli.runWithToken(token, "room", "get", strings.ToLower(room.Code))
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, room.Code, decodeOutput[response.Room](t, output).Code)

	// Leave room
	output, err = cli.runWithToken(token, "room", "leave", room.Code)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, decodeOutput[messageResponse](t, output).Message, "Left room")

	// The empty room is gone
	_, err = cli.runWithToken(token, "room", "get", room.Code)
	assert.Error(t, err)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	tokens := map[string]string{}
	for _, name := range []string{"Alice", "Bob"} {
		output, err := cli.run("player", "guest", "--name", name)
		require.NoError(t, err, "output: %s", output)
		tokens[name] = decodeOutput[response.AuthResponse](t, output).SessionToken
	}

	output, err := cli.runWithToken(tokens["Alice"], "room", "create")
	require.NoError(t, err, "output: %s", output)
	code := decodeOutput[response.Room](t, output).Code
	t.Logf("Created room: %s", code)

	output, err = cli.runWithToken(tokens["Bob"], "room", "join", code)
	require.NoError(t, err, "output: %s", output)
	assert.Len(t, decodeOutput[response.Room](t, output).Members, 2)

	output, err = cli.runWithToken(tokens["Alice"], "game", "start", code)
	require.NoError(t, err, "output: %s", output)
	view := decodeOutput[response.GameView](t, output)
	require.Len(t, view.Players, 2)
	t.Logf("Game started, first player: %s", view.CurrentPlayer.Name)

	// Income until someone can coup, then coup; the victim gives up
	// whichever influence they still hold.
	for range 100 {
		output, err = cli.runWithToken(tokens["Alice"], "game", "get", code)
		require.NoError(t, err, "output: %s", output)
		view = decodeOutput[response.GameView](t, output)
		if view.Phase.Kind == model.PhaseGameOver {
			break
		}

		switch view.Phase.Kind {
		case model.PhaseTurn:
			mover := view.CurrentPlayer
			args := []string{"game", "move", code, "income"}
			for _, p := range view.Players {
				if p.PlayerRef != mover && view.Players[seat(view, mover)].Coins >= 7 {
					args = []string{"game", "move", code, "coup", "--victim", p.Name}
				}
			}
			output, err = cli.runWithToken(tokens[mover.Name], args...)
			require.NoError(t, err, "output: %s", output)

		case model.PhaseWaitSurrender:
			victim := view.Phase.Player
			output, err = cli.runWithToken(tokens[victim.Name], "game", "get", code)
			require.NoError(t, err, "output: %s", output)
			own := decodeOutput[response.GameView](t, output)

			var role model.Role
			for _, inf := range own.Players[seat(own, victim)].Influences {
				if inf.Alive {
					role = inf.Role
					break
				}
			}
			output, err = cli.runWithToken(tokens[victim.Name], "game", "move", code, "surrender", "--role", string(role))
			require.NoError(t, err, "output: %s", output)

		default:
			t.Fatalf("unexpected phase %s", view.Phase.Kind)
		}
	}

	require.Equal(t, model.PhaseGameOver, view.Phase.Kind)
	require.NotNil(t, view.Winner)
	t.Logf("Game complete! Winner: %s", view.Winner.Name)

	output, err = cli.runWithToken(tokens["Alice"], "room", "get", code)
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "finished", decodeOutput[response.Room](t, output).State)
}

func seat(view response.GameView, ref model.PlayerRef) int {
	for i, p := range view.Players {
		if p.PlayerRef == ref {
			return i
		}
	}
	return -1
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, output, "UNAUTHORIZED")

	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	token := decodeOutput[response.AuthResponse](t, output).SessionToken

	// Non-existent room
	output, err = cli.runWithToken(token, "room", "get", "NOSUCHRM")
	assert.Error(t, err)
	assert.Contains(t, output, "ROOM_NOT_FOUND")

	// Starting alone
	output, err = cli.runWithToken(token, "room", "create")
	require.NoError(t, err)
	code := decodeOutput[response.Room](t, output).Code

	output, err = cli.runWithToken(token, "game", "start", code)
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_PLAYER_COUNT")

	// Bad move flags never reach the server
	output, err = cli.runWithToken(token, "game", "move", code, "teleport")
	assert.Error(t, err)
}
