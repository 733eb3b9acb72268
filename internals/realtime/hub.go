package realtime

import (
	"sync"

	"go.uber.org/zap"

	"schoolhub_backend/internals/observability"
)

// Topics published by the backend. Clients subscribe by topic name; scoped
// topics append the scope id, e.g. "teacher-notifications-refresh:<teacherId>".
const (
	TopicTeacherNotifications = "teacher-notifications-refresh"
	TopicAdminNotifications   = "admin-notifications-refresh"
	TopicStudentTimetable     = "student-timetable-refresh"
	TopicStudentNotifications = "student-notifications-refresh"
	TopicScheduleUpdated      = "schedule-updated"
)

// Event is what subscribers receive.
type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Publisher is the fire-and-forget broadcast primitive. Publishing never
// blocks the caller and never returns an error; delivery is best-effort.
type Publisher interface {
	Publish(topic string, payload any)
}

// Hub is the in-process Publisher implementation. One subscriber channel per
// websocket connection; slow consumers get events dropped, not queued forever.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

type Subscriber struct {
	topics map[string]struct{}
	ch     chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a consumer for the given topics. Topic matching is by
// prefix so a client subscribed to "student-timetable-refresh" also receives
// the course-scoped "student-timetable-refresh:<courseId>" events.
func (h *Hub) Subscribe(topics []string) *Subscriber {
	sub := &Subscriber{
		topics: make(map[string]struct{}, len(topics)),
		ch:     make(chan Event, 16),
	}
	for _, t := range topics {
		sub.topics[t] = struct{}{}
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// C is the subscriber's receive channel. Closed on Unsubscribe.
func (s *Subscriber) C() <-chan Event {
	return s.ch
}

func (s *Subscriber) wants(topic string) bool {
	if _, ok := s.topics[topic]; ok {
		return true
	}
	// scoped topic: base name before the ':'
	for i := 0; i < len(topic); i++ {
		if topic[i] == ':' {
			_, ok := s.topics[topic[:i]]
			return ok
		}
	}
	return false
}

func (h *Hub) Publish(topic string, payload any) {
	ev := Event{Topic: topic, Payload: payload}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.wants(topic) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			observability.L().Warn("realtime: dropping event for slow subscriber",
				zap.String("topic", topic))
		}
	}
}

// Scoped builds a scope-qualified topic name.
func Scoped(topic, scope string) string {
	return topic + ":" + scope
}
