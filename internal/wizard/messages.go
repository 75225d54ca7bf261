package wizard

import "time"

const (
	descSearchRejected = "The search term is invalid or the daily search quota was exceeded."
	descCreateFailed   = "The forum already exists or the channel does not exist."
)

func validationFailed() Notification {
	return Notification{
		Signal:   SignalValidationFailed,
		Title:    "Enter at least two characters.",
		Severity: SeverityWarning,
		Duration: 3 * time.Second,
	}
}

func searchFailed(d *ErrorDetail) Notification {
	n := Notification{
		Signal:   SignalSearchFailed,
		Title:    "Channel search failed",
		Severity: SeverityError,
		Duration: 3 * time.Second,
	}
	if d != nil && d.Kind == FailureRejected {
		n.Description = descSearchRejected
		n.Duration = 5 * time.Second
	}
	return n
}

func createSucceeded() Notification {
	return Notification{
		Signal:   SignalCreateSucceeded,
		Title:    "Forum created",
		Severity: SeveritySuccess,
		Duration: 5 * time.Second,
	}
}

func createFailed(d *ErrorDetail) Notification {
	n := Notification{
		Signal:      SignalCreateFailedGeneric,
		Title:       "Forum was not created",
		Description: descCreateFailed,
		Severity:    SeverityError,
		Duration:    3 * time.Second,
	}
	if d != nil && d.Kind == FailureRejected {
		n.Signal = SignalCreateFailedDuplicate
		n.Severity = SeverityWarning
	}
	return n
}
