package progression

// Observer is notified after a transition has been persisted.
type Observer interface {
	ObserveTransition(e Event, t Transition)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) ObserveTransition(Event, Transition) {}
