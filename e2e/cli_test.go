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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdash/quizdash-go/internal/api"
	"github.com/quizdash/quizdash-go/internal/factory"
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
	binaryPath := filepath.Join(projectRoot, "bin", "quizdash-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/quizdash")
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

	// Create application
	projectRoot := findProjectRoot(t)
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	// Load question bank
	_, err = app.QuestionService.LoadFromFile(context.Background(), filepath.Join(projectRoot, "data/questions.json"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		SessionController: app.SessionController,
		RecoveryService:   app.RecoveryService,
		Broadcaster:       app.Broadcaster,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
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
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
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

// Correct answers for the geography questions in data/questions.json,
// keyed by question ID since the served order is shuffled
var geographyAnswers = map[string]string{
	"geo-001": "2",
	"geo-002": "1",
	"geo-003": "1",
	"geo-004": "0,2",
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	Token string `json:"token"`
}

type roomResponse struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	HostID string `json:"host_id"`
	Config struct {
		QuestionCount int `json:"question_count"`
	} `json:"config"`
	Members []struct {
		PlayerID    string `json:"player_id"`
		DisplayName string `json:"display_name"`
		IsHost      bool   `json:"is_host"`
		Ready       bool   `json:"ready"`
		Score       int    `json:"score"`
	} `json:"members"`
	CurrentIndex  int `json:"current_index"`
	QuestionCount int `json:"question_count"`
}

type snapshotResponse struct {
	RoomCode     string `json:"room_code"`
	Status       string `json:"status"`
	CurrentIndex int    `json:"current_index"`
	Question     *struct {
		ID      string   `json:"id"`
		Type    string   `json:"type"`
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
	} `json:"question"`
	RemainingMs int64 `json:"remaining_ms"`
	Submitted   bool  `json:"submitted"`
}

type answerResponse struct {
	QuestionID   string `json:"question_id"`
	Correct      bool   `json:"correct"`
	PointsEarned int    `json:"points_earned"`
}

type resultRow struct {
	Placement    int    `json:"placement"`
	PlayerID     string `json:"player_id"`
	DisplayName  string `json:"display_name"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correct_count"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.Token)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--user", "bob", "--pass", "hunter22", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Bob", authResp.Player.DisplayName)
	assert.False(t, authResp.Player.IsGuest)

	output, err = cli.run("player", "login", "--user", "bob", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Bob", authResp.Player.DisplayName)

	// Wrong password is rejected
	_, err = cli.run("player", "login", "--user", "bob", "--pass", "wrong")
	require.Error(t, err)
}

func TestCLI_FullMatch(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Two players
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var alice authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))

	output, err = cli.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var bob authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	// Alice creates a 2-question geography room
	output, err = cli.runWithToken(alice.Token, "room", "create",
		"--questions", "2", "--category", "geography", "--seconds", "30")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	require.NotEmpty(t, room.Code)
	assert.Equal(t, "waiting", room.Status)

	// Bob joins
	output, err = cli.runWithToken(bob.Token, "room", "join", room.Code)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Len(t, room.Members, 2)

	// Both ready up, match starts
	output, err = cli.runWithToken(alice.Token, "room", "ready", room.Code)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(bob.Token, "room", "ready", room.Code)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Equal(t, "in_progress", room.Status)

	// Play both questions, using the snapshot to find the current question
	for i := 0; i < 2; i++ {
		output, err = cli.runWithToken(alice.Token, "match", "snapshot", room.Code)
		require.NoError(t, err, "output: %s", output)

		var snap snapshotResponse
		require.NoError(t, json.Unmarshal([]byte(output), &snap))
		require.NotNil(t, snap.Question)

		correct, ok := geographyAnswers[snap.Question.ID]
		require.True(t, ok, "unexpected question %s", snap.Question.ID)

		// Alice answers correctly
		output, err = cli.runWithToken(alice.Token, "match", "answer", room.Code,
			"--question", snap.Question.ID, "--value", correct, "--elapsed-ms", "1000")
		require.NoError(t, err, "output: %s", output)

		var ans answerResponse
		require.NoError(t, json.Unmarshal([]byte(output), &ans))
		assert.True(t, ans.Correct)
		assert.Positive(t, ans.PointsEarned)

		// Bob answers wrong; the question advances once both are in
		output, err = cli.runWithToken(bob.Token, "match", "answer", room.Code,
			"--question", snap.Question.ID, "--value", "incorrect", "--elapsed-ms", "2000")
		require.NoError(t, err, "output: %s", output)
	}

	// Match finished, results ranked
	output, err = cli.runWithToken(alice.Token, "match", "results", room.Code)
	require.NoError(t, err, "output: %s", output)

	var results []resultRow
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Placement)
	assert.Equal(t, "Alice", results[0].DisplayName)
	assert.Equal(t, 2, results[0].CorrectCount)
	assert.Equal(t, "Bob", results[1].DisplayName)
	assert.Equal(t, 0, results[1].Score)
}

func TestCLI_LeaveRoom(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var alice authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))

	output, err = cli.runWithToken(alice.Token, "room", "create")
	require.NoError(t, err, "output: %s", output)
	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))

	_, err = cli.runWithToken(alice.Token, "room", "leave", room.Code)
	require.NoError(t, err)

	// Last member left, so the room is gone
	_, err = cli.runWithToken(alice.Token, "room", "get", room.Code)
	require.Error(t, err)
}
