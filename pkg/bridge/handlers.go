package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/boom-router/boom/internal/errors"
	"github.com/boom-router/boom/pkg/paths"
)

// NavigateRequest is the body of POST /navigate.
type NavigateRequest struct {
	To      string `json:"to"`
	Replace bool   `json:"replace,omitempty"`
}

// HistoryResponse is the body of GET /history.
type HistoryResponse struct {
	Entries []string `json:"entries"`
	Length  int      `json:"length"`
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	s.navMu.Lock()
	msg := s.snapshot()
	s.navMu.Unlock()
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.New("E201").Wrap(err))
		return
	}

	target, err := canonicalTarget(req.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.static() {
		s.writeError(w, r, errors.New("E206"))
		return
	}

	writeJSON(w, http.StatusOK, s.navigate(target, req.Replace))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder()
	if !ok {
		s.writeError(w, r, errors.New("E203"))
		return
	}

	s.navMu.Lock()
	entries := rec.History().Entries()
	s.navMu.Unlock()

	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Length: len(entries)})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.recorder()
	if !ok {
		s.writeError(w, r, errors.New("E203"))
		return
	}

	s.navMu.Lock()
	rec.Reset()
	msg := s.snapshot()
	s.navMu.Unlock()

	s.logger.Info("bridge history reset", "remote", r.RemoteAddr, "path", msg.Path)
	writeJSON(w, http.StatusOK, msg)
}

// canonicalTarget validates a target received from a peer. The escape
// marker survives canonicalization.
func canonicalTarget(to string) (string, error) {
	if to == "" {
		return "", errors.New("E201").WithField("to")
	}

	t := paths.ParseTarget(to)
	clean, err := paths.Canonicalize(t.Path)
	if err != nil {
		return "", errors.New("E202").
			WithField("to").
			WithDetailf("target %q: %v", to, err).
			Wrap(err)
	}
	t.Path = clean
	return t.String(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	be := errors.FromError(err, "E201")
	s.logger.Warn("bridge request failed",
		"remote", r.RemoteAddr,
		"method", r.Method,
		"path", r.URL.Path,
		"code", be.Code,
		"error", be.Error())
	writeJSON(w, be.HTTPStatus(), map[string]any{"error": be})
}
