package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/malabomap/internal/boot"
	"github.com/ziadkadry99/malabomap/internal/mapview"
	"github.com/ziadkadry99/malabomap/internal/session"
)

// maxMessageSize bounds one client event.
const maxMessageSize = 4096

// newUpgrader accepts the origins the CORS handler accepts: the page's own
// origin and local development origins, or any origin when allowAll is set.
func newUpgrader(allowAll bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return allowAll || sameOrLocalOrigin(r)
		},
	}
}

func sameOrLocalOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	host := u.Hostname()
	return u.Scheme == "http" && (host == "localhost" || host == "127.0.0.1")
}

// Server message types.
const (
	MessageReady  = "ready"
	MessagePatch  = "patch"
	MessageError  = "error"
	MessageReload = "reload"
)

// ServerMessage is the outgoing websocket message format.
type ServerMessage struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id,omitempty"`
	Ops       []mapview.Op `json:"ops,omitempty"`
	Content   string       `json:"content,omitempty"`
}

// socketConn serialises writes from the event loop and the patch pump.
type socketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *socketConn) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(msg)
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	if _, err := h.state.Current(); err != nil {
		writeError(w, http.StatusServiceUnavailable, boot.ErrorTitle)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	sc := &socketConn{conn: conn}
	// The state may have been reloaded since the check above.
	sess, err := h.openSession()
	if err != nil {
		sc.send(ServerMessage{Type: MessageReload})
		return
	}
	defer h.sessions.Remove(sess.ID)

	stop := make(chan struct{})
	pumped := make(chan struct{})
	go h.pump(sc, sess, stop, pumped)
	defer func() {
		close(stop)
		<-pumped
	}()

	if err := sc.send(ServerMessage{Type: MessageReady, SessionID: sess.ID}); err != nil {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", zap.String("session", sess.ID), zap.Error(err))
			}
			return
		}

		var ev session.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sc.send(ServerMessage{Type: MessageError, SessionID: sess.ID, Content: "invalid message format"})
			continue
		}
		if err := sess.Dispatch(ev); err != nil {
			if errors.Is(err, session.ErrClosed) {
				return
			}
			sc.send(ServerMessage{Type: MessageError, SessionID: sess.ID, Content: err.Error()})
		}
	}
}

// pump forwards the session's patches until the socket loop stops or the
// session is closed from outside, in which case the page is told to reload.
func (h *Handler) pump(sc *socketConn, sess *session.Session, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case ops := <-sess.Updates():
			if err := sc.send(ServerMessage{Type: MessagePatch, SessionID: sess.ID, Ops: ops}); err != nil {
				h.logger.Debug("websocket write", zap.String("session", sess.ID), zap.Error(err))
				sc.conn.Close()
				return
			}
		case <-sess.Done():
			select {
			case <-stop:
				return
			default:
			}
			sc.send(ServerMessage{Type: MessageReload, SessionID: sess.ID})
			sc.mu.Lock()
			sc.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "reload"),
				time.Now().Add(time.Second))
			sc.mu.Unlock()
			sc.conn.Close()
			return
		}
	}
}
