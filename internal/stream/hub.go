// Package stream serves simulation frames to browser renderers over
// websockets, plus a small JSON API.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"github.com/san-kum/orrery/internal/system"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10

	DefaultBuffer = 16
)

// ClientObserver is told when websocket clients come and go.
type ClientObserver interface {
	ClientConnected()
	ClientDisconnected()
}

type PathMessage struct {
	ID     system.BodyID `json:"id"`
	Name   string        `json:"name"`
	Color  string        `json:"color"`
	Points [][3]float64  `json:"points"`
}

type StarMessage struct {
	ID    system.BodyID `json:"id"`
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Scale float64       `json:"scale"`
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Z     float64       `json:"z"`
}

// PathsMessage is the first message on every connection.
type PathsMessage struct {
	Type  string        `json:"type"`
	Stars []StarMessage `json:"stars"`
	Paths []PathMessage `json:"paths"`
}

type BodyFrame struct {
	ID   system.BodyID `json:"id"`
	Name string        `json:"name"`
	X    float64       `json:"x"`
	Y    float64       `json:"y"`
	Z    float64       `json:"z"`
}

type FrameMessage struct {
	Type   string      `json:"type"`
	Tick   int         `json:"tick"`
	Time   float64     `json:"time"`
	Bodies []BodyFrame `json:"bodies"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to websocket clients. It implements frame.Sink.
// A client whose buffer is full misses frames instead of stalling the
// publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  system.Snapshot
	dropped int

	paths    []byte
	buffer   int
	upgrader websocket.Upgrader
	observer ClientObserver
	logger   log.Logger
}

type Option func(*Hub)

func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithObserver(o ClientObserver) Option {
	return func(h *Hub) { h.observer = o }
}

func WithLogger(l log.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHub(sys *system.System, opts ...Option) (*Hub, error) {
	h := &Hub{
		clients: make(map[*client]struct{}),
		latest:  sys.Snapshot(),
		buffer:  DefaultBuffer,
		logger:  log.NewNopLogger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = log.With(h.logger, "component", "stream")

	paths, err := json.Marshal(BuildPaths(sys))
	if err != nil {
		return nil, err
	}
	h.paths = paths
	return h, nil
}

// BuildPaths collects every planet's precomputed polyline and every star.
func BuildPaths(sys *system.System) PathsMessage {
	msg := PathsMessage{Type: "paths"}
	for _, b := range sys.Bodies() {
		if b.Kind == system.KindStar {
			msg.Stars = append(msg.Stars, StarMessage{
				ID: b.ID, Name: b.Name, Color: b.Tint.String(), Scale: b.Scale,
				X: b.Position.X, Y: b.Position.Y, Z: b.Position.Z,
			})
			continue
		}
		pts, err := sys.Path(b.ID)
		if err != nil {
			continue
		}
		pm := PathMessage{ID: b.ID, Name: b.Name, Color: b.Tint.String(), Points: make([][3]float64, len(pts))}
		for i, p := range pts {
			pm.Points[i] = [3]float64{p.X, p.Y, p.Z}
		}
		msg.Paths = append(msg.Paths, pm)
	}
	return msg
}

func encodeFrame(snap system.Snapshot) ([]byte, error) {
	msg := FrameMessage{Type: "frame", Tick: snap.Tick, Time: snap.Time, Bodies: make([]BodyFrame, len(snap.Bodies))}
	for i, b := range snap.Bodies {
		msg.Bodies[i] = BodyFrame{ID: b.ID, Name: b.Name, X: b.X, Y: b.Y, Z: b.Z}
	}
	return json.Marshal(msg)
}

func (h *Hub) Publish(snap system.Snapshot) {
	data, err := encodeFrame(snap)
	if err != nil {
		level.Error(h.logger).Log("msg", "encode frame", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = snap
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts frames not delivered to full client buffers.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

func (h *Hub) Latest() system.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.observer != nil {
		h.observer.ClientConnected()
	}
	level.Debug(h.logger).Log("msg", "client connected", "remote", c.conn.RemoteAddr(), "clients", n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		if h.observer != nil {
			h.observer.ClientDisconnected()
		}
		level.Debug(h.logger).Log("msg", "client disconnected", "clients", n)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(h.logger).Log("msg", "upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.buffer+1)}
	c.send <- h.paths
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
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
