// Package ws exposes the swipe surface as a WebSocket event stream: the
// client sends raw pointer events, the server-side gesture interpreter
// emits the resulting decisions.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"bimatch/internal/gesture"
	"bimatch/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST surface
	},
}

// Client frame types.
const (
	frameStart   = "start"
	frameMove    = "move"
	frameRelease = "release"
	frameCancel  = "cancel"
	framePress   = "press"
)

// Server frame types.
const (
	frameOffset   = "offset"
	frameReset    = "reset"
	frameDecision = "decision"
	frameAdvance  = "advance"
	frameError    = "error"
)

// Frame is the WebSocket envelope in both directions.
type Frame struct {
	Type      string  `json:"type"`
	X         float64 `json:"x,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Offset    float64 `json:"offset,omitempty"`
	Payload   any     `json:"payload,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// GestureHandler upgrades gesture stream connections.
type GestureHandler struct {
	sessionSvc *service.SessionService
}

// NewGestureHandler creates a new gesture handler.
func NewGestureHandler(sessionSvc *service.SessionService) *GestureHandler {
	return &GestureHandler{sessionSvc: sessionSvc}
}

// GestureWS handles GET /v1/ws/sessions/{id}/gesture
func (h *GestureHandler) GestureWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	// Reject unknown sessions before upgrading.
	if _, err := h.sessionSvc.Get(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &gestureConn{
		sessionID:  sessionID,
		sessionSvc: h.sessionSvc,
		ws:         wsConn,
		interp:     gesture.New(),
		send:       make(chan []byte, 64),
		done:       make(chan struct{}),
	}

	log.Printf("Gesture stream opened for session %s", sessionID)

	go conn.writePump()
	conn.readPump()
}

// gestureConn serves one session's gesture stream. The read loop is the
// single writer of the interpreter state; outbound frames go through
// the send channel so the cooldown timer can post the advance frame.
type gestureConn struct {
	sessionID  string
	sessionSvc *service.SessionService
	ws         *websocket.Conn
	send       chan []byte
	done       chan struct{}
	interp     *gesture.Interpreter
}

func (c *gestureConn) readPump() {
	defer func() {
		close(c.done)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Gesture stream read error: %v", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.reply(Frame{Type: frameError, Error: "invalid frame"})
			continue
		}
		c.handle(frame)
	}
}

func (c *gestureConn) handle(frame Frame) {
	switch frame.Type {
	case frameStart:
		c.interp.Start(frame.X)
	case frameMove:
		c.interp.Move(frame.X)
		if c.interp.Dragging() {
			c.reply(Frame{Type: frameOffset, Offset: c.interp.Offset()})
		}
	case frameRelease:
		if dir, ok := c.interp.Release(); ok {
			c.emit(dir)
		} else {
			c.reply(Frame{Type: frameReset})
		}
	case frameCancel:
		c.interp.Cancel()
		c.reply(Frame{Type: frameReset})
	case framePress:
		dir := gesture.Direction(frame.Direction)
		if dir != gesture.Left && dir != gesture.Right {
			c.reply(Frame{Type: frameError, Error: "unknown direction"})
			return
		}
		if emitted, ok := c.interp.Press(dir); ok {
			c.emit(emitted)
		}
	default:
		c.reply(Frame{Type: frameError, Error: "unknown frame type"})
	}
}

// emit folds the decision for the current dilemma and schedules the
// advance frame for when the cooldown elapses. The decision frame goes
// out immediately; the navigation away from the session is not required
// to wait for the store, errors are reported on the stream and logged.
func (c *gestureConn) emit(dir gesture.Direction) {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	card, err := c.sessionSvc.CurrentCard(ctx, c.sessionID)
	if err != nil {
		c.replyError(err)
		return
	}

	outcome, err := c.sessionSvc.SubmitDecision(ctx, c.sessionID, card.DilemmaID, dir == gesture.Right)
	if err != nil {
		c.replyError(err)
		return
	}

	c.reply(Frame{Type: frameDecision, Direction: string(dir), Payload: outcome})

	wait := time.Until(outcome.InteractiveAt)
	if wait < 0 {
		wait = 0
	}
	time.AfterFunc(wait, func() {
		c.reply(Frame{Type: frameAdvance, Payload: map[string]any{
			"completed": outcome.Completed,
			"next":      outcome.Next,
		}})
	})
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (c *gestureConn) replyError(err error) {
	log.Printf("Gesture stream session %s: %v", c.sessionID, err)
	c.reply(Frame{Type: frameError, Error: err.Error()})
}

func (c *gestureConn) reply(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

func (c *gestureConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
