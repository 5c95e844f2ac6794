// Package daemonapi is the wallet/miner-side client for the daemon's
// JSON-RPC-over-WebSocket API, including server-push event
// subscriptions.
package daemonapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/umbra-network/go-umbra/internal/api"
)

// ErrClosed is returned for calls made after the connection closed.
var ErrClosed = errors.New("daemon connection closed")

// RPCError is a JSON-RPC error object returned by the daemon.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type response struct {
	ID     *uint64         `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`

	// Notifications carry a method and params instead of an id.
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type notification struct {
	Event api.NotifyEvent `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is a concurrent-safe daemon API client. One goroutine reads the
// socket and dispatches responses by id and notifications by event name.
type Client struct {
	conn *websocket.Conn
	log  *logrus.Entry

	writeMu sync.Mutex
	nextID  uint64

	mu      sync.Mutex
	pending map[uint64]chan *response
	subs    map[api.NotifyEvent][]chan json.RawMessage
	closed  bool
	done    chan struct{}
}

// Connect dials the daemon WebSocket endpoint, e.g.
// "ws://127.0.0.1:8080/json_rpc".
func Connect(ctx context.Context, address string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("dial daemon %s: %w", address, err)
	}
	c := &Client{
		conn:    conn,
		log:     logrus.WithField("module", "daemonapi"),
		pending: make(map[uint64]chan *response),
		subs:    make(map[api.NotifyEvent][]chan json.RawMessage),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer c.shutdown()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.log.Debugf("read loop stopped: %v", err)
			return
		}
		var resp response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.log.Debugf("dropping unparseable message: %v", err)
			continue
		}
		if resp.ID != nil {
			c.dispatchResponse(&resp)
			continue
		}
		if resp.Method == "notify" {
			c.dispatchNotification(resp.Params)
		}
	}
}

func (c *Client) dispatchResponse(resp *response) {
	c.mu.Lock()
	ch, ok := c.pending[*resp.ID]
	if ok {
		delete(c.pending, *resp.ID)
	}
	c.mu.Unlock()
	if ok {
		ch <- resp
	}
}

func (c *Client) dispatchNotification(params json.RawMessage) {
	var note notification
	if err := json.Unmarshal(params, &note); err != nil {
		c.log.Debugf("dropping malformed notification: %v", err)
		return
	}
	c.mu.Lock()
	listeners := append([]chan json.RawMessage(nil), c.subs[note.Event]...)
	c.mu.Unlock()
	for _, ch := range listeners {
		select {
		case ch <- note.Data:
		default:
			c.log.Warnf("dropping %s event: subscriber not keeping up", note.Event)
		}
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
	for event, listeners := range c.subs {
		for _, ch := range listeners {
			close(ch)
		}
		delete(c.subs, event)
	}
	_ = c.conn.Close()
}

// Close terminates the connection. Pending calls fail with ErrClosed and
// subscription channels are closed.
func (c *Client) Close() error {
	c.shutdown()
	return nil
}

// Call performs one JSON-RPC call and unmarshals the result into result
// when it is non-nil.
func (c *Client) Call(ctx context.Context, method string, params, result interface{}) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan *response, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	req := request{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	c.writeMu.Lock()
	err := c.conn.WriteJSON(&req)
	c.writeMu.Unlock()
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return fmt.Errorf("call %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	case resp, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if resp.Error != nil {
			return fmt.Errorf("call %s: %w", method, resp.Error)
		}
		if result != nil {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("call %s: decoding result: %w", method, err)
			}
		}
		return nil
	}
}

// Subscribe registers for a server-push event stream. The returned
// channel is closed when the connection shuts down.
func (c *Client) Subscribe(ctx context.Context, event api.NotifyEvent) (<-chan json.RawMessage, error) {
	params := map[string]interface{}{"notify": event}
	if err := c.Call(ctx, "subscribe", params, nil); err != nil {
		return nil, err
	}
	ch := make(chan json.RawMessage, 16)
	c.mu.Lock()
	c.subs[event] = append(c.subs[event], ch)
	c.mu.Unlock()
	return ch, nil
}
