package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"AeroComply/pkg/metrics"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

var (
	ErrChannelFull    = errors.New("ws: channel send buffer full")
	ErrChannelClosed  = errors.New("ws: channel closed")
	ErrChannelNotOpen = errors.New("ws: channel not open")
	errNilChannel     = errors.New("ws: nil channel")
	errEmptyPayload   = errors.New("ws: empty payload")
)

// Channel 一条实时推送通道。Send 必须是非阻塞的：无法立即投递时返回错误
type Channel interface {
	ID() string
	Send(payload []byte) error
	Close()
}

// ChannelDeliveryError 某条通道投递失败；该通道会被移出注册表
type ChannelDeliveryError struct {
	ChannelID string
	Err       error
}

func (e *ChannelDeliveryError) Error() string {
	return fmt.Sprintf("deliver to channel %s: %v", e.ChannelID, e.Err)
}

func (e *ChannelDeliveryError) Unwrap() error { return e.Err }

// Event 推送给客户端的 JSON 事件，Timestamp 在发送时填充
type Event struct {
	Type       string      `json:"type"`
	EntityType string      `json:"entity_type,omitempty"`
	EntityID   string      `json:"entity_id,omitempty"`
	Timestamp  string      `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

type binding struct {
	userID string
	orgID  string
}

// Hub 连接注册表：所有映射的读写都在同一把锁下完成，投递前先拷贝目标集合
type Hub struct {
	mu       sync.Mutex
	channels map[Channel]binding
	users    map[string]map[Channel]struct{}
	orgs     map[string]map[string]int // org -> user -> 该用户在此 org 下的通道数

	now func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[Channel]binding),
		users:    make(map[string]map[Channel]struct{}),
		orgs:     make(map[string]map[string]int),
		now:      time.Now,
	}
}

// opener 由 Client 实现，注册成功后切换到 Open 状态
type opener interface {
	markOpen()
}

// Register 注册通道。userID 为空时只参与全局广播；userID 与 orgID 都存在时把用户挂到 org 下
func (h *Hub) Register(ch Channel, userID, orgID string) {
	if ch == nil {
		return
	}
	if userID == "" {
		orgID = ""
	}
	if o, ok := ch.(opener); ok {
		o.markOpen()
	}

	h.mu.Lock()
	_, existed := h.channels[ch]
	if existed {
		h.removeLocked(ch)
	}
	h.channels[ch] = binding{userID: userID, orgID: orgID}
	if userID != "" {
		set := h.users[userID]
		if set == nil {
			set = make(map[Channel]struct{})
			h.users[userID] = set
		}
		set[ch] = struct{}{}
	}
	if orgID != "" {
		members := h.orgs[orgID]
		if members == nil {
			members = make(map[string]int)
			h.orgs[orgID] = members
		}
		members[userID]++
	}
	h.mu.Unlock()

	if !existed {
		metrics.RealtimeConnections.Inc()
	}
}

// Unregister 移除通道并关闭它；重复调用是安全的
func (h *Hub) Unregister(ch Channel) {
	if ch == nil {
		return
	}
	h.mu.Lock()
	removed := h.removeLocked(ch)
	h.mu.Unlock()

	ch.Close()
	if removed {
		metrics.RealtimeConnections.Dec()
	}
}

func (h *Hub) removeLocked(ch Channel) bool {
	b, ok := h.channels[ch]
	if !ok {
		return false
	}
	delete(h.channels, ch)

	if b.userID != "" {
		if set := h.users[b.userID]; set != nil {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.users, b.userID)
			}
		}
	}
	if b.orgID != "" {
		if members := h.orgs[b.orgID]; members != nil {
			members[b.userID]--
			if members[b.userID] <= 0 {
				delete(members, b.userID)
			}
			if len(members) == 0 {
				delete(h.orgs, b.orgID)
			}
		}
	}
	return true
}

// SendToUser 投递给该用户的全部通道，返回成功数
func (h *Hub) SendToUser(userID string, ev Event) int {
	if userID == "" {
		return 0
	}
	h.mu.Lock()
	targets := make([]Channel, 0, len(h.users[userID]))
	for ch := range h.users[userID] {
		targets = append(targets, ch)
	}
	h.mu.Unlock()

	return h.deliver(targets, ev)
}

// SendToOrg 投递给当前挂在 org 下的每个用户的全部通道
func (h *Hub) SendToOrg(orgID string, ev Event) int {
	if orgID == "" {
		return 0
	}
	h.mu.Lock()
	var targets []Channel
	for userID := range h.orgs[orgID] {
		for ch := range h.users[userID] {
			targets = append(targets, ch)
		}
	}
	h.mu.Unlock()

	return h.deliver(targets, ev)
}

// Broadcast 投递给进程内所有已打开的通道
func (h *Hub) Broadcast(ev Event) int {
	h.mu.Lock()
	targets := make([]Channel, 0, len(h.channels))
	for ch := range h.channels {
		targets = append(targets, ch)
	}
	h.mu.Unlock()

	return h.deliver(targets, ev)
}

func (h *Hub) deliver(targets []Channel, ev Event) int {
	if len(targets) == 0 {
		return 0
	}
	ev.Timestamp = h.now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(ev)
	if err != nil {
		zlog.Error("ws event marshal failed", zap.String("type", ev.Type), zap.Error(err))
		return 0
	}

	delivered := 0
	for _, ch := range targets {
		if err := send(ch, payload); err != nil {
			zlog.Warn("ws delivery failed, pruning channel", zap.Error(err))
			h.Unregister(ch)
			metrics.RealtimePruned.Inc()
			continue
		}
		delivered++
	}
	return delivered
}

func send(ch Channel, payload []byte) (err error) {
	if ch == nil {
		return &ChannelDeliveryError{Err: errNilChannel}
	}
	if len(payload) == 0 {
		return &ChannelDeliveryError{ChannelID: ch.ID(), Err: errEmptyPayload}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &ChannelDeliveryError{ChannelID: ch.ID(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if sendErr := ch.Send(payload); sendErr != nil {
		return &ChannelDeliveryError{ChannelID: ch.ID(), Err: sendErr}
	}
	return nil
}

// ConnectionCount 当前注册的通道总数
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels)
}

// UserChannelCount 某用户当前的通道数
func (h *Hub) UserChannelCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users[userID])
}

// OrgMembers 当前挂在 org 下的用户
func (h *Hub) OrgMembers(orgID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.orgs[orgID]))
	for userID := range h.orgs[orgID] {
		out = append(out, userID)
	}
	return out
}
