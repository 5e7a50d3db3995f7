package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"AeroComply/pkg/util"
	"AeroComply/pkg/zlog"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 通道状态：Connecting -> Open -> Closed（终态）
const (
	StateConnecting int32 = iota
	StateOpen
	StateClosed
)

const defaultSendBuffer = 64

type ClientOptions struct {
	SendBuffer int
	WriteWait  time.Duration
	PongWait   time.Duration
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.SendBuffer <= 0 {
		o.SendBuffer = defaultSendBuffer
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	return o
}

// Client 基于 gorilla/websocket 的通道实现，只有 WritePump 会写连接
type Client struct {
	id     string
	userID string
	orgID  string
	conn   *websocket.Conn
	opts   ClientOptions

	mu    sync.RWMutex
	send  chan []byte
	state atomic.Int32

	closeOnce sync.Once
}

func NewClient(userID, orgID string, conn *websocket.Conn, opts ClientOptions) *Client {
	opts = opts.withDefaults()
	return &Client{
		id:     util.GenerateChannelID(),
		userID: userID,
		orgID:  orgID,
		conn:   conn,
		opts:   opts,
		send:   make(chan []byte, opts.SendBuffer),
	}
}

func (c *Client) ID() string     { return c.id }
func (c *Client) UserID() string { return c.userID }
func (c *Client) OrgID() string  { return c.orgID }
func (c *Client) State() int32   { return c.state.Load() }

func (c *Client) markOpen() {
	c.state.CompareAndSwap(StateConnecting, StateOpen)
}

// Send 非阻塞入队；缓冲区满视为慢客户端，直接返回错误
func (c *Client) Send(payload []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.state.Load() {
	case StateClosed:
		return ErrChannelClosed
	case StateConnecting:
		return ErrChannelNotOpen
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrChannelFull
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state.Store(StateClosed)
		close(c.send)
		c.mu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// WritePump 串行写出队列中的消息并定期发送 ping，保证同一通道内的消息按入队顺序到达
func (c *Client) WritePump() {
	if c.conn == nil {
		return
	}
	ticker := time.NewTicker(c.opts.PongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zlog.Warn("ws write failed", zap.String("channel_id", c.id), zap.String("user_id", c.userID), zap.Error(err))
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zlog.Warn("ws ping failed", zap.String("channel_id", c.id), zap.Error(err))
				_ = c.conn.Close()
				return
			}
		}
	}
}
