package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case ev := <-sub.C():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestPublishReachesMatchingSubscriberOnly(t *testing.T) {
	hub := NewHub()
	teacher := hub.Subscribe([]string{TopicTeacherNotifications})
	admin := hub.Subscribe([]string{TopicAdminNotifications})
	defer hub.Unsubscribe(teacher)
	defer hub.Unsubscribe(admin)

	hub.Publish(TopicTeacherNotifications, map[string]any{"teacherId": "t1"})

	ev := receiveOne(t, teacher)
	assert.Equal(t, TopicTeacherNotifications, ev.Topic)
	assert.Empty(t, admin.C())
}

func TestScopedTopicMatchesBaseSubscription(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe([]string{TopicStudentTimetable})
	defer hub.Unsubscribe(sub)

	scoped := Scoped(TopicStudentTimetable, "course-123")
	hub.Publish(scoped, map[string]any{"courseId": "course-123"})

	ev := receiveOne(t, sub)
	assert.Equal(t, scoped, ev.Topic)
}

func TestScopedSubscriptionIgnoresOtherScopes(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe([]string{Scoped(TopicStudentTimetable, "course-a")})
	defer hub.Unsubscribe(sub)

	hub.Publish(Scoped(TopicStudentTimetable, "course-b"), nil)
	assert.Empty(t, sub.C())

	hub.Publish(Scoped(TopicStudentTimetable, "course-a"), nil)
	ev := receiveOne(t, sub)
	assert.Equal(t, Scoped(TopicStudentTimetable, "course-a"), ev.Topic)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe([]string{TopicScheduleUpdated})
	defer hub.Unsubscribe(sub)

	// overflow the buffer; Publish must return every time
	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			hub.Publish(TopicScheduleUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	assert.Len(t, sub.C(), 16)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe([]string{TopicScheduleUpdated})
	hub.Unsubscribe(sub)

	_, open := <-sub.C()
	require.False(t, open)

	// publishing after unsubscribe must not panic on the closed channel
	hub.Publish(TopicScheduleUpdated, nil)
	hub.Unsubscribe(sub) // idempotent
}
