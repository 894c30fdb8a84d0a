package bridge

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/boom-router/boom/internal/errors"
)

// Frame types.
const (
	TypeLocation = "location"
	TypeNavigate = "navigate"
	TypeError    = "error"
)

// Frame is a message received from a WebSocket client.
type Frame struct {
	Type    string `json:"type"`
	To      string `json:"to,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// ErrorFrame is sent to a client whose frame was rejected.
type ErrorFrame struct {
	Type  string            `json:"type"`
	Error *errors.BoomError `json:"error"`
}

type client struct {
	id   string
	conn *websocket.Conn

	// writeMu guards conn; gorilla allows one concurrent writer.
	writeMu sync.Mutex
}

func (c *client) send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		s.logger.Warn("bridge websocket upgrade failed",
			"remote", r.RemoteAddr,
			"code", "E204",
			"error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}

	// The first frame is sent under navMu so it can never overtake a
	// broadcast of a later location.
	s.navMu.Lock()
	s.clientsMu.Lock()
	s.clients[c.id] = c
	s.clientsMu.Unlock()
	msg := s.snapshot()
	msg.Type = TypeLocation
	err = c.send(msg)
	s.navMu.Unlock()

	if err != nil {
		s.dropClient(c)
		return
	}
	s.logger.Info("bridge client connected", "conn", c.id, "remote", r.RemoteAddr)

	s.readLoop(c)
	s.dropClient(c)
	s.logger.Info("bridge client disconnected", "conn", c.id, "remote", r.RemoteAddr)
}

func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("bridge websocket read failed", "conn", c.id, "error", err)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			s.reject(c, errors.New("E201").Wrap(err))
			continue
		}
		if f.Type != TypeNavigate {
			s.reject(c, errors.New("E205").WithDetailf("Got type %q; expected %q.", f.Type, TypeNavigate))
			continue
		}

		target, err := canonicalTarget(f.To)
		if err != nil {
			s.reject(c, errors.FromError(err, "E202"))
			continue
		}
		if s.static() {
			s.reject(c, errors.New("E206"))
			continue
		}

		// Subscribers, including this client, receive the new location
		// from broadcastLocation.
		s.navigate(target, f.Replace)
	}
}

func (s *Server) reject(c *client, be *errors.BoomError) {
	s.logger.Warn("bridge frame rejected", "conn", c.id, "code", be.Code, "error", be.Error())
	if err := c.send(ErrorFrame{Type: TypeError, Error: be}); err != nil {
		s.logger.Warn("bridge websocket write failed", "conn", c.id, "error", err)
	}
}

// broadcastLocation runs as a router subscriber, inside Navigate.
func (s *Server) broadcastLocation() {
	msg := s.snapshot()
	msg.Type = TypeLocation

	s.clientsMu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.RUnlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			s.logger.Warn("bridge websocket write failed", "conn", c.id, "error", err)
			s.dropClient(c)
		}
	}
}

func (s *Server) dropClient(c *client) {
	s.clientsMu.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	s.clientsMu.Unlock()
	if ok {
		c.conn.Close()
	}
}
