package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.NewConfigBuilder().WithHash(1).Build()
	srv := New(ctx, cfg, zerolog.Nop())
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/engine"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, line string) {
	t.Helper()
	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte(line)))
}

// readUntil collects frames until one equals last.
func readUntil(t *testing.T, conn *websocket.Conn, last string) []string {
	t.Helper()
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var lines []string
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q after %q: %v", last, lines, err)
		}
		lines = append(lines, string(msg))
		if string(msg) == last {
			return lines
		}
	}
}

func TestWebSocket_UCISession(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, "uci")
	lines := readUntil(t, conn, "uciok")
	testutil.AssertEqual(t, lines[0], "id name CPW-80 Engine 1.2")

	send(t, conn, "isready")
	readUntil(t, conn, "readyok")
}

func TestWebSocket_Search(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, "uci")
	readUntil(t, conn, "uciok")
	send(t, conn, "position startpos moves e2e4\ngo depth 2")

	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if strings.HasPrefix(string(msg), "bestmove ") {
			return
		}
		testutil.AssertTrue(t, strings.HasPrefix(string(msg), "info "), "unexpected %q", msg)
	}
}

func TestWebSocket_MultiLineFrame(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, "uci\nisready")
	lines := readUntil(t, conn, "readyok")
	testutil.AssertEqual(t, lines[len(lines)-2], "uciok")
}

// backRank sends "d" and returns the rank 8 row of the diagram.
func backRank(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	send(t, conn, "d")
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	row := ""
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		line := string(msg)
		if strings.HasPrefix(line, " 8 | ") {
			row = line
		}
		if strings.Contains(line, " to move, hash ") {
			return row
		}
	}
}

func TestWebSocket_ConnectionsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)

	send(t, a, "variant gothic")
	testutil.AssertEqual(t, backRank(t, a), " 8 | r | n | b | q | c | k | a | b | n | r |")
	testutil.AssertEqual(t, backRank(t, b), " 8 | r | n | a | b | q | k | b | c | n | r |")
}

func TestWebSocket_QuitClosesConnection(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, "quit")
	testutil.AssertNoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	testutil.AssertTrue(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	deadline := time.Now().Add(5 * time.Second)
	for srv.Clients() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	testutil.AssertEqual(t, srv.Clients(), 0)
}

func TestVariantsHandler(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/variants")
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	var body struct {
		Default  string   `json:"default"`
		Variants []string `json:"variants"`
	}
	testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&body))
	testutil.AssertEqual(t, body.Default, variant.Default)
	testutil.AssertEqual(t, body.Variants, variant.Names())
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
		{"variants wrong method", http.MethodPost, "/variants", http.StatusMethodNotAllowed},
		{"engine without upgrade", http.MethodGet, "/engine", http.StatusBadRequest},
	}
	_, ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			testutil.AssertNoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			testutil.AssertNoError(t, err)
			resp.Body.Close()
			testutil.AssertEqual(t, resp.StatusCode, tt.want)
		})
	}
}
