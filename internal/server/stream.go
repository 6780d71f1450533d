package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ForecastLens/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client gesture event types.
const (
	eventWheel  = "wheel"
	eventDown   = "down"
	eventMove   = "move"
	eventUp     = "up"
	eventReset  = "reset"
	eventResize = "resize"
	eventClose  = "close"
	eventPing   = "ping"
)

// event is a pointer gesture from the client. X is plot-local; PlotWidth
// is the plot width at the time of the event.
type event struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	DeltaY    float64 `json:"deltaY"`
	PlotWidth float64 `json:"plotWidth"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

type reply struct {
	Type  string         `json:"type"`
	Frame *session.Frame `json:"frame,omitempty"`
	Error string         `json:"error,omitempty"`
}

type streamClient struct {
	conn *websocket.Conn
	view *session.View
	send chan []byte
	done chan struct{}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade: %v", err)
		return
	}
	c := &streamClient{conn: conn, view: v, send: make(chan []byte, 16), done: make(chan struct{})}
	log.Printf("[INFO] stream opened for view %s from %s", v.ID, r.RemoteAddr)

	go c.writePump()
	c.push(reply{Type: "frame", Frame: ptr(v.Frame())})
	c.readPump(s.Sessions)
}

// readPump applies client gestures to the view in arrival order and owns
// the send channel.
func (c *streamClient) readPump(sessions *session.Manager) {
	defer func() {
		close(c.send)
		log.Printf("[INFO] stream closed for view %s", c.view.ID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WARN] stream read: %v", err)
			}
			return
		}
		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.push(reply{Type: "error", Error: "invalid event"})
			continue
		}

		var f session.Frame
		switch ev.Type {
		case eventWheel:
			f = zoomView(c.view, ev.X, ev.DeltaY, ev.PlotWidth)
		case eventDown:
			f = c.view.PanStart(ev.X)
		case eventMove:
			f = c.view.PanMove(ev.X, ev.PlotWidth)
		case eventUp:
			f = c.view.PanEnd()
		case eventReset:
			f = c.view.Reset()
		case eventResize:
			if ev.Width <= 0 || ev.Height <= 0 {
				c.push(reply{Type: "error", Error: "resize needs width and height"})
				continue
			}
			l := c.view.Layout()
			l.Width, l.Height = ev.Width, ev.Height
			f = c.view.Resize(l)
		case eventPing:
			c.push(reply{Type: "pong"})
			continue
		case eventClose:
			if err := sessions.Close(c.view.ID); err != nil {
				log.Printf("[WARN] close view %s: %v", c.view.ID, err)
			}
			c.push(reply{Type: "closed"})
			return
		default:
			c.push(reply{Type: "error", Error: "unknown event type " + ev.Type})
			continue
		}
		c.push(reply{Type: "frame", Frame: &f})
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *streamClient) push(r reply) {
	data, err := json.Marshal(r)
	if err != nil {
		log.Printf("[ERROR] encode stream reply: %v", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

func ptr[T any](v T) *T { return &v }
