package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abdullah/dombili/pkg/dom"
	"github.com/abdullah/dombili/pkg/htmlnode"
)

// sessionCommand is one client message on a document session.
type sessionCommand struct {
	ID       int64        `json:"id"`
	Cmd      string       `json:"cmd"` // load, query, mutate, render, close
	HTML     string       `json:"html,omitempty"`
	Selector string       `json:"selector,omitempty"`
	Ops      []mutationOp `json:"ops,omitempty"`
}

// sessionReply answers a sessionCommand, matched up by ID.
type sessionReply struct {
	ID      int64         `json:"id"`
	OK      bool          `json:"ok"`
	Error   string        `json:"error,omitempty"`
	Count   int           `json:"count,omitempty"`
	Matches []matchResult `json:"matches,omitempty"`
	HTML    string        `json:"html,omitempty"`
	Applied int           `json:"applied,omitempty"`
}

// session holds one WebSocket connection and the document it operates on.
// All access to the document happens on the read loop goroutine, so the
// core's single-threaded contract holds without locking.
type session struct {
	conn   *websocket.Conn
	srv    *Server
	logger *slog.Logger
	doc    *dom.Document
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("session upgrade failed", "error", err)
		return
	}

	sess := &session{
		conn:   conn,
		srv:    s,
		logger: s.logger.With("remote", conn.RemoteAddr().String()),
	}
	s.metrics.sessionsActive.Inc()
	defer s.metrics.sessionsActive.Dec()

	sess.readLoop()
}

// readLoop reads commands until the connection closes or goes idle.
func (s *session) readLoop() {
	defer s.conn.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.srv.config.SessionIdleTimeout))

		var cmd sessionCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("session read error", "error", err)
			}
			return
		}

		s.srv.metrics.sessionCommands.WithLabelValues(cmd.Cmd).Inc()
		if cmd.Cmd == "close" {
			s.write(sessionReply{ID: cmd.ID, OK: true})
			return
		}
		s.write(s.handle(cmd))
	}
}

func (s *session) handle(cmd sessionCommand) sessionReply {
	switch cmd.Cmd {
	case "load":
		host, err := htmlnode.ParseString(cmd.HTML)
		if err != nil {
			return fail(cmd.ID, "parse: "+err.Error())
		}
		s.doc = dom.New(host)
		return sessionReply{ID: cmd.ID, OK: true}

	case "query":
		if s.doc == nil {
			return fail(cmd.ID, "no document loaded")
		}
		if cmd.Selector == "" {
			return fail(cmd.ID, "selector is required")
		}
		matches := s.doc.SelectAll(cmd.Selector)
		reply := sessionReply{ID: cmd.ID, OK: true, Count: len(matches)}
		for _, n := range matches {
			reply.Matches = append(reply.Matches, matchResult{
				HTML: htmlnode.OuterHTML(n),
				Text: htmlnode.Text(n),
			})
		}
		return reply

	case "mutate":
		if s.doc == nil {
			return fail(cmd.ID, "no document loaded")
		}
		applied, err := applyOps(s.doc, cmd.Ops)
		if err != nil {
			return fail(cmd.ID, err.Error())
		}
		return sessionReply{ID: cmd.ID, OK: true, Applied: applied}

	case "render":
		if s.doc == nil {
			return fail(cmd.ID, "no document loaded")
		}
		return sessionReply{ID: cmd.ID, OK: true, HTML: htmlnode.OuterHTML(s.doc.Root())}

	default:
		return fail(cmd.ID, "unknown command "+cmd.Cmd)
	}
}

func (s *session) write(reply sessionReply) {
	s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
	if err := s.conn.WriteJSON(reply); err != nil {
		s.logger.Error("session write error", "error", err)
	}
}

func fail(id int64, msg string) sessionReply {
	return sessionReply{ID: id, OK: false, Error: msg}
}
