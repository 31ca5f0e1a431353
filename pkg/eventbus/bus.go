package eventbus

import (
	"context"
	"fmt"
	"sync"
)

// ErrShutdownTimeout is returned if calling Shutdown(ctx) causes the context to timeout before all
// subscribers have exited
var ErrShutdownTimeout error = fmt.Errorf("eventbus: context timeout or cancelled before all subscribers exited")

// EventBus dispatches events to all subscribers on one or more topics.  If no topic is set, a
// default topic is used that dispatches events to every subscriber.  Subscribers can use the
// EventType to filter which events they respond to rather than configuring multiple topics.
type EventBus struct {
	subscribers map[Topic][]chan Event
	done        []chan struct{}
	pending     sync.WaitGroup
	mutex       sync.RWMutex
}

// New returns a new event bus.  A default topic is created, but subscribers may create other
// topics when they register.
func New() *EventBus {
	return &EventBus{
		subscribers: make(map[Topic][]chan Event),
	}
}

// Subscribe will register a subscriber to 0 or more topics.  If no topic is defined, the
// subscriber is added to the default topic and receives all events published on any topic.
//
// The subscriber receives two channels.  The first receives events and is closed when the bus
// shuts down; subscribers should treat a closed event channel as the shutdown signal.  After
// finishing any in-flight work the subscriber must close the second (done) channel to signal that
// it has exited.
func (e *EventBus) Subscribe(topics ...Topic) (chan Event, chan struct{}) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	c := make(chan Event, 1)
	done := make(chan struct{})
	e.done = append(e.done, done)

	if len(topics) == 0 {
		topics = []Topic{defaultTopic}
	}

	for _, topic := range topics {
		e.subscribers[topic] = append(e.subscribers[topic], c)
	}
	return c, done
}

// Unsubscribe removes the subscriber from receiving any more events and closes its channels
func (e *EventBus) Unsubscribe(c chan Event, done chan struct{}) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	for topic, chs := range e.subscribers {
		for i, ch := range chs {
			if ch == c {
				close(ch)
				e.subscribers[topic] = append(e.subscribers[topic][0:i], e.subscribers[topic][i+1:]...)
			}
		}
	}

	for i, d := range e.done {
		if d == done {
			close(d)
			e.done = append(e.done[0:i], e.done[i+1:]...)
		}
	}
}

// Dispatch will send the event to 0 or more topics.  All events are also broadcast to default
// topic subscribers, even when other topics are specified.  Events published to a topic with no
// subscribers are silently dropped.
func (e *EventBus) Dispatch(event Event, topics ...Topic) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	topics = append(topics, defaultTopic)

	for _, topic := range topics {
		channels, ok := e.subscribers[topic]
		if len(channels) == 0 || !ok {
			continue
		}

		// copy the channel list so the send goroutine does not race with unsubscribes
		chs := append([]chan Event{}, channels...)

		// registered under the read lock so Shutdown cannot observe an empty
		// wait group while a send goroutine is still being started
		e.pending.Add(1)
		go func(event Event, chs []chan Event) {
			defer e.pending.Done()
			for _, ch := range chs {
				ch <- event
			}
		}(event, chs)
	}
}

// Shutdown waits for in-flight dispatches to be delivered, then sends the shutdown signal to all
// subscribers and blocks until they exit.  Use a context timeout to prevent shutdown from hanging
// when a subscriber cannot finish processing its events in a reasonable time.
func (e *EventBus) Shutdown(ctx context.Context) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	// drain in-flight dispatches before closing any subscriber channel so
	// that events published just before shutdown are delivered, not dropped
	flushed := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(flushed)
	}()
	select {
	case <-ctx.Done():
		return ErrShutdownTimeout
	case <-flushed:
	}

	done := make(chan struct{})
	go shutdownNotify(done, append([]chan struct{}{}, e.done...))

	for _, chs := range e.subscribers {
		for _, ch := range chs {
			close(ch)
		}
	}

	select {
	case <-ctx.Done():
		return ErrShutdownTimeout
	case <-done:
		return nil
	}
}

// shutdownNotify watches every subscriber done channel and closes done once all of them are
// closed on the subscriber end
func shutdownNotify(done chan struct{}, all []chan struct{}) {
	var wg sync.WaitGroup

	for _, ch := range all {
		wg.Add(1)
		go func(c chan struct{}) {
			<-c
			wg.Done()
		}(ch)
	}
	wg.Wait()
	close(done)
}
