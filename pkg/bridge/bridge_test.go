package bridge

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/boom-router/boom/pkg/location/hash"
	"github.com/boom-router/boom/pkg/location/memory"
	"github.com/boom-router/boom/pkg/router"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, p *memory.Provider, base string) (*Server, *httptest.Server) {
	t.Helper()
	s := New(router.New(p, router.WithBase(base), router.WithLogger(quietLogger())), WithLogger(quietLogger()))
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return s, ts
}

func getLocation(t *testing.T, url string) LocationMessage {
	t.Helper()
	resp, err := http.Get(url + "/location")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /location status = %d", resp.StatusCode)
	}
	var msg LocationMessage
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func postNavigate(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url+"/navigate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestLocation(t *testing.T) {
	_, ts := newTestServer(t, memory.New(memory.Config{Path: "/app/users?tab=1"}), "/app")

	msg := getLocation(t, ts.URL)
	if msg.Path != "/users" || msg.Search != "tab=1" || msg.Href != "/app/users" {
		t.Errorf("GET /location = %+v", msg)
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
		wantAt   string
	}{
		{"relative to base", `{"to":"/settings"}`, "/settings", "/app/settings"},
		{"canonicalized", `{"to":"/a//b/../c/"}`, "/a/c", "/app/a/c"},
		{"escaped", `{"to":"~/outside"}`, "~/outside", "/outside"},
		{"with search", `{"to":"/find?q=x"}`, "/find", "/app/find"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := memory.New(memory.Config{Path: "/app"})
			_, ts := newTestServer(t, p, "/app")

			resp, body := postNavigate(t, ts.URL, tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
			}
			if body["path"] != tt.wantPath {
				t.Errorf("path = %v, want %q", body["path"], tt.wantPath)
			}
			if got := p.Snapshot().Path; got != tt.wantAt {
				t.Errorf("provider at %q, want %q", got, tt.wantAt)
			}
		})
	}
}

func TestNavigateRejects(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed json", `{`, "E201"},
		{"missing target", `{}`, "E201"},
		{"full url", `{"to":"https://example.com/"}`, "E202"},
		{"not rooted", `{"to":"users"}`, "E202"},
		{"climbs above root", `{"to":"/../etc"}`, "E202"},
		{"backslash", `{"to":"/a\\b"}`, "E202"},
		{"bad escape", `{"to":"/a%zz"}`, "E202"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := memory.New(memory.Config{Path: "/start"})
			_, ts := newTestServer(t, p, "")

			resp, body := postNavigate(t, ts.URL, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if got := errorCode(body); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
			if p.Snapshot().Path != "/start" {
				t.Errorf("rejected request moved the provider to %q", p.Snapshot().Path)
			}
		})
	}
}

func TestNavigateStatic(t *testing.T) {
	_, ts := newTestServer(t, memory.New(memory.Config{Path: "/fixed", Static: true}), "")

	resp, body := postNavigate(t, ts.URL, `{"to":"/elsewhere"}`)
	if resp.StatusCode != http.StatusConflict || errorCode(body) != "E206" {
		t.Errorf("status = %d, code = %q", resp.StatusCode, errorCode(body))
	}
}

func TestHistoryAndReset(t *testing.T) {
	p := memory.New(memory.Config{Path: "/test", Record: true})
	_, ts := newTestServer(t, p, "")

	postNavigate(t, ts.URL, `{"to":"/a"}`)
	postNavigate(t, ts.URL, `{"to":"/b","replace":true}`)

	resp, err := http.Get(ts.URL + "/history")
	if err != nil {
		t.Fatal(err)
	}
	var hist HistoryResponse
	json.NewDecoder(resp.Body).Decode(&hist)
	resp.Body.Close()

	if hist.Length != 2 || hist.Entries[0] != "/test" || hist.Entries[1] != "/b" {
		t.Errorf("GET /history = %+v", hist)
	}

	resp, err = http.Post(ts.URL+"/reset", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /reset status = %d", resp.StatusCode)
	}

	rec, _ := p.Recorder()
	if got := rec.History().Entries(); len(got) != 1 || got[0] != "/test" {
		t.Errorf("history after reset = %v", got)
	}
	if p.Snapshot().Path != "/test" {
		t.Errorf("provider after reset at %q", p.Snapshot().Path)
	}
}

func TestHistoryNotRecording(t *testing.T) {
	_, ts := newTestServer(t, memory.New(memory.Config{}), "")

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/history"},
		{http.MethodPost, "/reset"},
	} {
		r, _ := http.NewRequest(req.method, ts.URL+req.path, nil)
		resp, err := http.DefaultClient.Do(r)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound || errorCode(body) != "E203" {
			t.Errorf("%s %s: status = %d, code = %q", req.method, req.path, resp.StatusCode, errorCode(body))
		}
	}
}

func TestHashProviderHref(t *testing.T) {
	doc := hash.NewMemoryDocument("https://example.com/index.html#/app/home")
	p := hash.New(hash.Config{Document: doc, Registry: hash.NewRegistry(doc, quietLogger()), Logger: quietLogger()})
	s := New(router.New(p, router.WithBase("/app"), router.WithLogger(quietLogger())), WithLogger(quietLogger()))
	defer s.Close()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/location", nil))

	var msg LocationMessage
	json.NewDecoder(rec.Body).Decode(&msg)
	if msg.Path != "/home" || msg.Href != "#/app/home" {
		t.Errorf("GET /location = %+v", msg)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/navigate", bytes.NewBufferString(`{"to":"/next"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /navigate status = %d", rec.Code)
	}
	if doc.Hash() != "#/app/next" {
		t.Errorf("document hash = %q", doc.Hash())
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame map[string]any
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func TestWebSocketPushesLocation(t *testing.T) {
	_, ts := newTestServer(t, memory.New(memory.Config{Path: "/start"}), "")
	conn := dial(t, ts)

	first := readFrame(t, conn)
	if first["type"] != TypeLocation || first["path"] != "/start" {
		t.Fatalf("first frame = %v", first)
	}

	postNavigate(t, ts.URL, `{"to":"/via-http"}`)

	frame := readFrame(t, conn)
	if frame["type"] != TypeLocation || frame["path"] != "/via-http" {
		t.Errorf("frame after HTTP navigate = %v", frame)
	}
}

func TestWebSocketNavigateFrames(t *testing.T) {
	p := memory.New(memory.Config{Path: "/start", Record: true})
	s, ts := newTestServer(t, p, "")

	a := dial(t, ts)
	b := dial(t, ts)
	readFrame(t, a)
	readFrame(t, b)

	if s.ClientCount() != 2 {
		t.Errorf("ClientCount() = %d, want 2", s.ClientCount())
	}

	if err := a.WriteJSON(Frame{Type: TypeNavigate, To: "/from-ws"}); err != nil {
		t.Fatal(err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		frame := readFrame(t, conn)
		if frame["path"] != "/from-ws" {
			t.Errorf("frame = %v", frame)
		}
	}

	rec, _ := p.Recorder()
	if rec.History().Len() != 2 {
		t.Errorf("history length = %d, want 2", rec.History().Len())
	}
}

func TestWebSocketRejectsFrames(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantCode string
	}{
		{"unknown type", `{"type":"reload"}`, "E205"},
		{"malformed", `not json`, "E201"},
		{"bad target", `{"type":"navigate","to":"/../x"}`, "E202"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := memory.New(memory.Config{Path: "/start"})
			_, ts := newTestServer(t, p, "")
			conn := dial(t, ts)
			readFrame(t, conn)

			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.frame)); err != nil {
				t.Fatal(err)
			}

			frame := readFrame(t, conn)
			if frame["type"] != TypeError || errorCode(frame) != tt.wantCode {
				t.Errorf("frame = %v, want error %s", frame, tt.wantCode)
			}
			if p.Snapshot().Path != "/start" {
				t.Errorf("rejected frame moved the provider to %q", p.Snapshot().Path)
			}
		})
	}
}

func TestCloseDropsClients(t *testing.T) {
	p := memory.New(memory.Config{})
	s := New(router.New(p, router.WithLogger(quietLogger())), WithLogger(quietLogger()))
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dial(t, ts)
	readFrame(t, conn)

	s.Close()
	s.Close()

	if s.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after Close", s.ClientCount())
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to be closed")
	}

	calls := 0
	p.Subscribe(func() { calls++ })
	p.Navigate("/after")
	if calls != 1 {
		t.Errorf("bridge still subscribed after Close")
	}
}
