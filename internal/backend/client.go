package backend

import (
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Client is a fire-and-forget connection to the game backend. Requests are
// msgpack envelopes over a single websocket; replies are matched by ID and
// delivered as queued callbacks that the frame loop drains, so no response
// is ever applied from the read goroutine.
//
// A nil *Client is valid and silently drops every call (offline mode).
type Client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]func(*Reply, error)
	closed  bool

	replies chan func()
}

var errClosed = errors.New("backend: connection closed")

// Dial connects to the backend websocket endpoint.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:    conn,
		pending: map[uint64]func(*Reply, error){},
		replies: make(chan func(), 64),
	}
	go c.readLoop()
	return c, nil
}

// Replies is the queue of response callbacks. The frame loop drains it once
// per frame; callbacks therefore run on the simulation goroutine.
func (c *Client) Replies() <-chan func() {
	if c == nil {
		return nil
	}
	return c.replies
}

// Offline reports whether there is no live connection; a nil client is the
// offline mode the game falls back to when no backend URL is set.
func (c *Client) Offline() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.conn.Close()
}

func (c *Client) do(req Request, cb func(*Reply, error)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if cb != nil {
			c.deliver(func() { cb(nil, errClosed) })
		}
		return
	}
	c.nextID++
	req.ID = c.nextID
	if cb != nil {
		c.pending[req.ID] = cb
	}
	data, err := msgpack.Marshal(&req)
	if err == nil {
		err = c.conn.WriteMessage(websocket.BinaryMessage, data)
	}
	c.mu.Unlock()
	if err != nil {
		log.Printf("backend: %s request failed: %v", req.Op, err)
		c.fail(req.ID, err)
	}
}

func (c *Client) fail(id uint64, err error) {
	c.mu.Lock()
	cb := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if cb != nil {
		c.deliver(func() { cb(nil, err) })
	}
}

func (c *Client) deliver(fn func()) {
	select {
	case c.replies <- fn:
	default:
		// a stalled frame loop should not block the read goroutine;
		// dropped replies behave like a lost network response
		log.Println("backend: reply queue full, dropping response")
	}
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.failAll(err)
			return
		}
		var rep Reply
		if err := msgpack.Unmarshal(data, &rep); err != nil {
			log.Printf("backend: bad reply: %v", err)
			continue
		}
		c.mu.Lock()
		cb := c.pending[rep.ID]
		delete(c.pending, rep.ID)
		c.mu.Unlock()
		if cb != nil {
			r := rep
			c.deliver(func() { cb(&r, nil) })
		}
	}
}

func (c *Client) failAll(err error) {
	c.mu.Lock()
	c.closed = true
	pending := c.pending
	c.pending = map[uint64]func(*Reply, error){}
	c.mu.Unlock()
	for _, cb := range pending {
		cb := cb
		c.deliver(func() { cb(nil, err) })
	}
	log.Printf("backend: connection lost: %v", err)
}

// Identify asks the server who this session belongs to.
func (c *Client) Identify(cb func(*Reply, error)) {
	c.do(Request{Op: OpIdentify}, cb)
}

// ReportRunEnd reports a finished run's score. The reply may carry an
// authoritative dolphin count, a streak reward and a coin delta.
func (c *Client) ReportRunEnd(score int, cb func(*Reply, error)) {
	c.do(Request{Op: OpRunEnd, Score: score}, cb)
}

// ReportOxygen is the best-effort mission ping for one collected tank.
func (c *Client) ReportOxygen() {
	c.do(Request{Op: OpOxygenCollected, Count: 1}, nil)
}

// ConsumeDolphin spends one double-jump charge server-side.
func (c *Client) ConsumeDolphin(cb func(*Reply, error)) {
	c.do(Request{Op: OpConsumeDolphin}, cb)
}

// ImportDolphins migrates a legacy local count into the server inventory.
func (c *Client) ImportDolphins(count int, cb func(*Reply, error)) {
	c.do(Request{Op: OpImportDolphins, Count: count}, cb)
}

// SubmitScore posts a leaderboard entry.
func (c *Client) SubmitScore(name string, score int, skin string, cb func(*Reply, error)) {
	c.do(Request{Op: OpSubmitScore, Name: name, Score: score, Skin: skin}, cb)
}

// FetchLeaderboard requests the current and weekly top lists.
func (c *Client) FetchLeaderboard(cb func(*Reply, error)) {
	c.do(Request{Op: OpLeaderboard}, cb)
}

// FetchMissions requests daily missions, progress, streak and inventory.
func (c *Client) FetchMissions(cb func(*Reply, error)) {
	c.do(Request{Op: OpMissions}, cb)
}
