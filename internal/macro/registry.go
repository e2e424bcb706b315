package macro

import (
	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/notify"
)

// Registry is the immutable trigger-to-action mapping. It is built once from
// validated bindings and only read afterwards, so lookups are safe under
// concurrent producers without locking.
type Registry struct {
	actions map[input.Trigger]Action
}

// BuildRegistry builds a registry from bindings in configuration order with
// first-write-wins conflict resolution: the first binding for a trigger is
// retained and every later duplicate is dropped with a diagnostic.
func BuildRegistry(bindings []Binding, hub *notify.Hub) *Registry {
	r := &Registry{actions: make(map[input.Trigger]Action, len(bindings))}

	for _, b := range bindings {
		if _, exists := r.actions[b.Trigger]; exists {
			if hub != nil {
				hub.Publish(notify.Event{
					Kind:    notify.KindBindingDropped,
					Trigger: b.Trigger,
					Detail:  "duplicate trigger, first binding kept",
				})
			}
			continue
		}
		r.actions[b.Trigger] = b.Action
	}

	return r
}

// Lookup returns the action bound to a trigger.
func (r *Registry) Lookup(t input.Trigger) (Action, bool) {
	act, ok := r.actions[t]
	return act, ok
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	return len(r.actions)
}

// Triggers returns every bound trigger, in no particular order.
func (r *Registry) Triggers() []input.Trigger {
	out := make([]input.Trigger, 0, len(r.actions))
	for t := range r.actions {
		out = append(out, t)
	}
	return out
}
