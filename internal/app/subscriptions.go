package app

import (
	"github.com/mfonda/keytrigger/internal/notify"
)

// subscribeLogging routes engine notifications to the logger.
func subscribeLogging(hub *notify.Hub, logger *Logger) *notify.Subscription {
	log := logger.WithComponent("engine")
	return hub.Subscribe(func(ev notify.Event) {
		switch ev.Kind {
		case notify.KindToggle:
			if ev.Enabled {
				log.Info("dispatch enabled")
			} else {
				log.Info("dispatch disabled")
			}
		case notify.KindBindingDropped:
			if ev.Err != nil {
				log.Warn("binding %s dropped: %s: %v", ev.Trigger, ev.Detail, ev.Err)
			} else {
				log.Warn("binding %s dropped: %s", ev.Trigger, ev.Detail)
			}
		case notify.KindFiringDropped:
			log.WithField("exec", ev.ExecID).Warn("%s firing dropped: %s", ev.Trigger, ev.Detail)
		case notify.KindUnknownKey:
			log.WithField("exec", ev.ExecID).Warn("unknown key %q: %s", ev.Key, ev.Detail)
		case notify.KindInjectionFailure:
			log.WithField("exec", ev.ExecID).Error("injection failed on %q: %v", ev.Key, ev.Err)
		case notify.KindExecution:
			if ev.Err != nil {
				log.WithField("exec", ev.ExecID).Warn("%s finished: %v", ev.Trigger, ev.Err)
			} else {
				log.WithField("exec", ev.ExecID).Debug("%s finished", ev.Trigger)
			}
		}
	})
}
