package resolver

import (
	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/sirupsen/logrus"
)

// LogObserver turns resolver events into structured log entries. Attempt
// level events are logged at debug, outcomes at info.
func LogObserver(log logrus.FieldLogger) plugin.Observer {
	return func(ev plugin.Event) {
		fields := logrus.Fields{
			"resolution": ev.Resolution,
			"event":      ev.Type.String(),
		}
		if ev.Address != "" {
			fields["address"] = ev.Address
		}
		if ev.Channel != "" {
			fields["channel"] = ev.Channel
			fields["attempt"] = ev.Attempt
		}
		if ev.Variant != "" {
			fields["variant"] = ev.Variant
		}
		if ev.Strategy != "" {
			fields["strategy"] = ev.Strategy
		}
		if ev.Duration > 0 {
			fields["duration"] = ev.Duration.String()
		}
		entry := log.WithFields(fields)
		if ev.Error != nil {
			entry = entry.WithError(ev.Error)
		}

		switch ev.Type {
		case plugin.EventAttemptStarted, plugin.EventAttemptSucceeded,
			plugin.EventAttemptTransportFailed, plugin.EventAttemptRejected:
			entry.Debug("attempt")
		case plugin.EventRaceExhausted, plugin.EventNoMatch:
			entry.Warn("resolution failed")
		case plugin.EventResolveFinished:
			entry.Info("resolve finished")
		default:
			msg := ev.Message
			if msg == "" {
				msg = ev.Type.String()
			}
			entry.Debug(msg)
		}
	}
}
