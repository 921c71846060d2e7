package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/octiline/internal/api"
	"github.com/mcoot/octiline/internal/api/middleware"
	"github.com/mcoot/octiline/internal/factory"
	"github.com/mcoot/octiline/internal/model"
	"github.com/mcoot/octiline/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "octiline-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/octiline")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
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

func startTestServer(t *testing.T) string {
	t.Helper()

	logger := testutil.NopLogger()
	app, err := factory.New(context.Background(), factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
		CORS:           middleware.DefaultCORSConfig(),
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := api.NewServer(router, api.DefaultServerConfig(), logger)
	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		_ = app.Close()
	})
	return "http://" + listener.Addr().String()
}

// Response types for JSON parsing
type pointResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type sessionResponse struct {
	ID       string          `json:"id"`
	State    string          `json:"state"`
	Player   int             `json:"player"`
	Winner   int             `json:"winner"`
	GridSize int             `json:"grid_size"`
	Turns    int             `json:"turns"`
	Path     []pointResponse `json:"path"`
	Message  struct {
		Heading string `json:"heading"`
		Body    string `json:"body"`
	} `json:"message"`
}

type moveSetResponse struct {
	Player     int             `json:"player"`
	StartNodes []pointResponse `json:"start_nodes"`
	Moves      []struct {
		Start pointResponse `json:"start"`
		End   pointResponse `json:"end"`
	} `json:"moves"`
}

type historyResponse struct {
	Games []struct {
		SessionID string `json:"session_id"`
		Winner    int    `json:"winner"`
		Turns     int    `json:"turns"`
	} `json:"games"`
}

type healthResponse struct {
	Status string `json:"status"`
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

func (r *cliRunner) click(t *testing.T, id string, p model.Point) sessionResponse {
	t.Helper()
	output, err := r.run("session", "click", id, strconv.Itoa(p.X), strconv.Itoa(p.Y))
	require.NoError(t, err, "click %s: %s", p, output)
	return decodeOutput[sessionResponse](t, output)
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	resp := decodeOutput[healthResponse](t, output)
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_SessionCommands(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("session", "new", "--size", "5")
	require.NoError(t, err, "output: %s", output)
	created := decodeOutput[sessionResponse](t, output)
	assert.Equal(t, "INITIALIZE", created.State)
	assert.Equal(t, 5, created.GridSize)
	assert.Equal(t, 1, created.Player)

	output, err = cli.run("session", "get", created.ID)
	require.NoError(t, err, "output: %s", output)
	got := decodeOutput[sessionResponse](t, output)
	assert.Equal(t, created.ID, got.ID)

	s := cli.click(t, created.ID, model.P(0, 0))
	assert.Equal(t, "VALID_START_NODE", s.State)

	output, err = cli.run("session", "moves", created.ID)
	require.NoError(t, err, "output: %s", output)
	moves := decodeOutput[moveSetResponse](t, output)
	assert.Equal(t, 1, moves.Player)
	assert.NotEmpty(t, moves.Moves)

	s = cli.click(t, created.ID, model.P(2, 0))
	assert.Equal(t, "VALID_END_NODE", s.State)
	assert.Equal(t, 2, s.Player)
	assert.Equal(t, []pointResponse{{0, 0}, {1, 0}, {2, 0}}, s.Path)

	// Rejected start node keeps the game playable
	s = cli.click(t, created.ID, model.P(4, 4))
	assert.Equal(t, "INVALID_START_NODE", s.State)
	assert.Equal(t, 2, s.Player)

	output, err = cli.run("session", "bot", created.ID, "--strategy", "random")
	require.NoError(t, err, "output: %s", output)
	s = decodeOutput[sessionResponse](t, output)
	assert.Equal(t, 2, s.Turns)

	output, err = cli.run("session", "reset", created.ID)
	require.NoError(t, err, "output: %s", output)
	s = decodeOutput[sessionResponse](t, output)
	assert.Equal(t, "INITIALIZE", s.State)
	assert.Empty(t, s.Path)

	output, err = cli.run("session", "error", created.ID, "renderer crashed")
	require.NoError(t, err, "output: %s", output)
	s = decodeOutput[sessionResponse](t, output)
	assert.Equal(t, "ERROR", s.State)
	assert.Equal(t, "renderer crashed", s.Message.Body)

	output, err = cli.run("session", "delete", created.ID)
	require.NoError(t, err, "output: %s", output)
	msg := decodeOutput[messageResponse](t, output)
	assert.Equal(t, "Session deleted", msg.Message)

	output, err = cli.run("session", "get", created.ID)
	require.Error(t, err)
	assert.Contains(t, output, "SESSION_NOT_FOUND")
}

func TestCLI_InvalidGridSize(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("session", "new", "--size", "1")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_GRID_SIZE")
}

func TestCLI_FullGameFlow(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("session", "new", "--size", "4")
	require.NoError(t, err, "output: %s", output)
	created := decodeOutput[sessionResponse](t, output)

	var s sessionResponse
	for _, p := range testutil.SampleGameClicks {
		s = cli.click(t, created.ID, p)
	}
	assert.Equal(t, "GAME_OVER", s.State)
	assert.Equal(t, testutil.SampleGameWinner, s.Winner)
	assert.Equal(t, "Game Over", s.Message.Heading)
	assert.Len(t, s.Path, len(testutil.SampleGamePath))

	// Further clicks are refused once the game is over
	output, err = cli.run("session", "click", created.ID, "1", "1")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_OVER")

	output, err = cli.run("history", "--limit", "5")
	require.NoError(t, err, "output: %s", output)
	history := decodeOutput[historyResponse](t, output)
	require.Len(t, history.Games, 1)
	assert.Equal(t, created.ID, history.Games[0].SessionID)
	assert.Equal(t, testutil.SampleGameWinner, history.Games[0].Winner)
	assert.Equal(t, 9, history.Games[0].Turns)
}
