// Package eventbus provides the event dispatch layer between a noise source monitor and its
// consumers.  Health test results, periodic assessments, and alarms are published as events so
// that reporting, logging, and shutdown handling can subscribe independently.
package eventbus

// EventType identifies the kind of event being passed on the bus.  Handlers use it to decide
// whether processing is required and how to interpret the data payload.
type EventType string

const (
	// TypeHealthAlarm is published when a continuous health test trips
	TypeHealthAlarm = EventType("health_alarm")
	// TypeAssessment is published after a full entropy assessment of a sample window
	TypeAssessment = EventType("assessment")
	// TypePeriodic is published on the periodic reporting interval
	TypePeriodic = EventType("periodic")
	// TypeError is published for internal errors that do not stop the monitor
	TypeError = EventType("error")
)

// Event is passed on the event bus to every subscriber on the topic
type Event struct {
	EventType EventType
	Data      interface{}
}

// Topic creates a group of subscribers that only receive events published to that channel
type Topic string

const (
	defaultTopic Topic = "__default__"
	errorTopic   Topic = "__errors__"
)

// OnErrorTopic returns the reserved topic for internal error events
func OnErrorTopic() Topic {
	return errorTopic
}
