// Package textinput implements the server-side contract of the
// text_input_v3 wire protocol: a process-wide, mutex-guarded tracker of
// bound instances and focused surface, with enable/disable-pending-until-
// commit semantics.
package textinput

import "sync"

// ClientID identifies the client that owns a text-input instance.
type ClientID string

// SurfaceID identifies a wire surface.
type SurfaceID string

// Instance is one client's bound zwp_text_input_v3 object.
type Instance struct {
	ID      uint32
	Client  ClientID
	Serial  uint32
	Enabled bool

	hasPending   bool
	pendingValue bool
}

// EventKind tags the variant of an Event.
type EventKind int

const (
	EventEnter EventKind = iota
	EventLeave
	EventDone
	EventEnabled
	EventDisabled
)

// Event is an outgoing text-input protocol event the compositor must
// deliver to the owning client.
type Event struct {
	Kind       EventKind
	InstanceID uint32
	Surface    SurfaceID
	Serial     uint32
}

// Tracker is the single process-wide text-input registry. Never expose
// its mutex to callers — only this façade's methods.
type Tracker struct {
	mu             sync.Mutex
	instances      map[uint32]*Instance
	focusedClient  ClientID
	focusedSurface SurfaceID
	hasFocus       bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{instances: make(map[uint32]*Instance)}
}

// GetTextInput registers a new instance for client. If a surface owned by
// this client already holds focus, an immediate Enter is returned.
func (t *Tracker) GetTextInput(client ClientID, instanceID uint32) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.instances[instanceID] = &Instance{ID: instanceID, Client: client}

	if t.hasFocus && t.focusedClient == client {
		return []Event{{Kind: EventEnter, InstanceID: instanceID, Surface: t.focusedSurface}}
	}
	return nil
}

// Enable buffers a pending "enabled=true" state; it does not apply until
// the next Commit.
func (t *Tracker) Enable(instanceID uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if inst, ok := t.instances[instanceID]; ok {
		inst.hasPending = true
		inst.pendingValue = true
	}
}

// Disable buffers a pending "enabled=false" state; it does not apply
// until the next Commit.
func (t *Tracker) Disable(instanceID uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if inst, ok := t.instances[instanceID]; ok {
		inst.hasPending = true
		inst.pendingValue = false
	}
}

// Commit increments the instance's serial, applies any pending
// enable/disable state, and returns the events the compositor must
// deliver: a Done is always present; an Enabled/Disabled is present only
// when commit caused a real state edge.
func (t *Tracker) Commit(instanceID uint32) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	inst, ok := t.instances[instanceID]
	if !ok {
		return nil
	}
	inst.Serial++
	events := []Event{{Kind: EventDone, InstanceID: instanceID, Serial: inst.Serial}}

	if inst.hasPending {
		edge := inst.pendingValue != inst.Enabled
		inst.Enabled = inst.pendingValue
		inst.hasPending = false
		if edge {
			kind := EventDisabled
			if inst.Enabled {
				kind = EventEnabled
			}
			events = append(events, Event{Kind: kind, InstanceID: instanceID})
		}
	}
	return events
}

// Destroy removes instanceID. If it was enabled, a Disabled event is
// returned so the compositor can hide the keyboard.
func (t *Tracker) Destroy(instanceID uint32) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	inst, ok := t.instances[instanceID]
	if !ok {
		return nil
	}
	delete(t.instances, instanceID)
	if inst.Enabled {
		return []Event{{Kind: EventDisabled, InstanceID: instanceID}}
	}
	return nil
}

// SetFocus changes the focused surface/client. Instances owned by the
// previously focused client receive Leave first; instances owned by the
// newly focused client then receive Enter, in that order.
func (t *Tracker) SetFocus(client ClientID, surface SurfaceID) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	var events []Event
	if t.hasFocus {
		prevClient, prevSurface := t.focusedClient, t.focusedSurface
		for _, inst := range t.instances {
			if inst.Client == prevClient {
				events = append(events, Event{Kind: EventLeave, InstanceID: inst.ID, Surface: prevSurface})
			}
		}
	}

	t.focusedClient = client
	t.focusedSurface = surface
	t.hasFocus = true

	for _, inst := range t.instances {
		if inst.Client == client {
			events = append(events, Event{Kind: EventEnter, InstanceID: inst.ID, Surface: surface})
		}
	}
	return events
}

// Enabled reports the current enabled state of an instance, for tests and
// diagnostics.
func (t *Tracker) Enabled(instanceID uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if inst, ok := t.instances[instanceID]; ok {
		return inst.Enabled
	}
	return false
}
