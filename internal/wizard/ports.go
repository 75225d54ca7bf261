package wizard

import "time"

// Severity of a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Signal identifies the event a notification reports.
type Signal string

const (
	SignalValidationFailed      Signal = "validation_failed"
	SignalSearchFailed          Signal = "search_failed"
	SignalCreateSucceeded       Signal = "create_succeeded"
	SignalCreateFailedDuplicate Signal = "create_failed_duplicate"
	SignalCreateFailedGeneric   Signal = "create_failed_generic"
)

// Notification is a fire-and-forget message for the user.
type Notification struct {
	Signal      Signal
	Title       string
	Description string
	Severity    Severity
	Duration    time.Duration // display hint
}

// Text returns the title and description joined for single-line display.
func (n Notification) Text() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}

// Notifier delivers notifications to the user. Notify must not block.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// CacheInvalidator marks a named collection for refetch.
type CacheInvalidator interface {
	InvalidateCachedCollection(key string)
}

// CreationFlag is the process-wide "creation in progress" flag.
type CreationFlag interface {
	Set(bool)
}
