package events

// Pending buffers the events an aggregate raises until the use case that
// changed it publishes them. The zero value is ready to use.
type Pending struct {
	events []DomainEvent
}

// Record appends events in the order they happened.
func (p *Pending) Record(evts ...DomainEvent) {
	p.events = append(p.events, evts...)
}

// Len reports how many events are waiting to be published.
func (p *Pending) Len() int {
	return len(p.events)
}

// Drain hands over the buffered events and leaves the buffer empty. It
// returns nil when nothing was recorded.
func (p *Pending) Drain() []DomainEvent {
	drained := p.events
	p.events = nil
	return drained
}
