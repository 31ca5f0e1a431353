package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownNotifier(t *testing.T) {
	chs := []chan struct{}{}
	for i := 0; i < 100; i++ {
		chs = append(chs, make(chan struct{}))
	}
	done := make(chan struct{})
	for _, ch := range chs {
		go func(c chan struct{}) {
			time.Sleep(50 * time.Millisecond)
			close(c)
		}(ch)
	}
	shutdownNotify(done, chs)

	assert.Equal(t, struct{}{}, <-done)
}

func TestSubscribe(t *testing.T) {
	contains := func(t Topic, all []Topic) bool {
		for _, t1 := range all {
			if t == t1 {
				return true
			}
		}
		return false
	}
	containsCh := func(c chan Event, all []chan Event) bool {
		for _, ch1 := range all {
			if c == ch1 {
				return true
			}
		}
		return false
	}

	tt := []struct {
		name     string
		topics   []Topic
		expected []Topic
	}{
		{name: "add default", topics: []Topic{}, expected: []Topic{defaultTopic}},
		{name: "create topic on subscribe", topics: []Topic{Topic("alarms")}, expected: []Topic{Topic("alarms")}},
		{name: "multi topic subscribe", topics: []Topic{Topic("alarms"), Topic("reports")}, expected: []Topic{Topic("alarms"), Topic("reports")}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			bus := New()
			c, d := bus.Subscribe(tc.topics...)
			for topic, chs := range bus.subscribers {
				switch {
				case contains(topic, tc.expected):
					assert.True(t, containsCh(c, chs))
				default:
					assert.False(t, containsCh(c, chs))
				}
			}
			found := false
			for _, d1 := range bus.done {
				if d1 == d {
					found = true
				}
			}
			assert.True(t, found)
		})
	}
}

func TestDispatch(t *testing.T) {
	bus := New()
	all, _ := bus.Subscribe()
	alarms, _ := bus.Subscribe(Topic("alarms"))

	bus.Dispatch(Event{EventType: TypeHealthAlarm, Data: "rct"}, Topic("alarms"))

	evt := <-alarms
	assert.Equal(t, TypeHealthAlarm, evt.EventType)
	assert.Equal(t, "rct", evt.Data)

	// default topic subscribers receive events published on any topic
	evt2 := <-all
	assert.Equal(t, TypeHealthAlarm, evt2.EventType)
}

func TestDispatchNoSubscribers(t *testing.T) {
	bus := New()
	// events on topics with no subscribers are dropped without blocking
	bus.Dispatch(Event{EventType: TypePeriodic}, Topic("nobody"))
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	c, d := bus.Subscribe(Topic("alarms"))
	bus.Unsubscribe(c, d)

	assert.Empty(t, bus.subscribers[Topic("alarms")])
	_, open := <-c
	assert.False(t, open)
	_, open = <-d
	assert.False(t, open)
}

func TestShutdown(t *testing.T) {
	bus := New()
	c, d := bus.Subscribe()

	go func() {
		for range c {
		}
		close(d)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	assert.NoError(t, bus.Shutdown(ctx))
}

func TestShutdownDeliversPendingEvents(t *testing.T) {
	bus := New()
	c, d := bus.Subscribe()

	received := make(chan int, 1)
	go func() {
		n := 0
		for range c {
			n++
		}
		received <- n
		close(d)
	}()

	// events published immediately before shutdown must still be delivered
	bus.Dispatch(Event{EventType: TypeAssessment, Data: 1})
	bus.Dispatch(Event{EventType: TypeAssessment, Data: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	assert.NoError(t, bus.Shutdown(ctx))
	assert.Equal(t, 2, <-received)
}

func TestShutdownTimeout(t *testing.T) {
	bus := New()
	// subscriber never closes its done channel
	_, _ = bus.Subscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Equal(t, ErrShutdownTimeout, bus.Shutdown(ctx))
}
