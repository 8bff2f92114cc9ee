package service

// EventPublisher pushes JSON events to connected clients. Satisfied by
// *websocket.Hub; tests substitute a recording fake.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// noopPublisher is used when no hub is wired (tests, one-off tools)
type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// NopPublisher returns an EventPublisher that discards everything
func NopPublisher() EventPublisher { return noopPublisher{} }
