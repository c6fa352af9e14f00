package changefeed

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Tables that publish change events.
const (
	TableAttendanceRecords = "attendance_records"
	TableLeaveRequests     = "leave_requests"
	TableNotifications     = "notifications"
	TableScheduleDays      = "schedule_days"
)

// KnownTable reports whether table publishes change events.
func KnownTable(table string) bool {
	switch table {
	case TableAttendanceRecords, TableLeaveRequests, TableNotifications, TableScheduleDays:
		return true
	}
	return false
}

// Shared reports whether rows of table belong to nobody in particular.
func Shared(table string) bool {
	return table == TableScheduleDays
}

// Op is a change kind. Ops combine into a subscription mask.
type Op uint8

const (
	OpInsert Op = 1 << iota
	OpUpdate
	OpDelete

	OpAll = OpInsert | OpUpdate | OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	var parts []string
	for _, single := range []Op{OpInsert, OpUpdate, OpDelete} {
		if o&single != 0 {
			parts = append(parts, single.String())
		}
	}
	return strings.Join(parts, ",")
}

// ParseMask turns "insert,update" into a mask. An empty string means every op.
func ParseMask(s string) (Op, error) {
	if strings.TrimSpace(s) == "" || s == "*" {
		return OpAll, nil
	}
	var mask Op
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "insert":
			mask |= OpInsert
		case "update":
			mask |= OpUpdate
		case "delete":
			mask |= OpDelete
		case "*":
			mask |= OpAll
		default:
			return 0, fmt.Errorf("unknown change event %q", part)
		}
	}
	return mask, nil
}

// Event is one row change. UserID is the owner of the row, used to scope
// delivery to non-admin subscribers.
type Event struct {
	Table  string
	Op     Op
	UserID string
	Record interface{}
	At     time.Time
}

type subscription struct {
	mask   Op
	userID string // empty receives every owner's events
}

// Hub manages change feed subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]subscription
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]subscription),
	}
}

// Subscribe registers a subscriber for every event on table matching mask.
func (h *Hub) Subscribe(table string, mask Op) (<-chan Event, func()) {
	return h.subscribe(table, subscription{mask: mask})
}

// SubscribeForUser is Subscribe restricted to rows owned by userID.
func (h *Hub) SubscribeForUser(table string, mask Op, userID string) (<-chan Event, func()) {
	return h.subscribe(table, subscription{mask: mask, userID: userID})
}

func (h *Hub) subscribe(table string, sub subscription) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[table] == nil {
		h.subscribers[table] = make(map[chan Event]subscription)
	}
	h.subscribers[table][ch] = sub

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[table], ch)
			close(ch)
			if len(h.subscribers[table]) == 0 {
				delete(h.subscribers, table)
			}
		})
	}

	return ch, cleanup
}

// Publish fans the event out to matching subscribers without blocking.
// Subscribers whose buffer is full miss the event.
func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, sub := range h.subscribers[event.Table] {
		if sub.mask&event.Op == 0 {
			continue
		}
		if sub.userID != "" && sub.userID != event.UserID {
			continue
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for a table
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[table])
}

// TotalSubscribers returns the total number of active subscribers across all tables
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
