package feed

import (
	"fjwuems/models"
)

// StartMillis derives the canonical start instant of an event from
// whichever date field is present. First present field wins; a present
// but unparseable value does NOT fall through to the next field, it
// yields DateMalformed. Malformed dates fail every date comparison, so
// such events drop out of all date-bounded views. That matches the
// behavior the mobile clients have always seen and is left as is.
func StartMillis(e *models.Event) (int64, models.DateState) {
	if !e.EventDate.IsZero() {
		return e.EventDate.Millis()
	}
	if e.DateTime != "" {
		return models.NewFlexDate(e.DateTime).Millis()
	}
	if !e.StartDate.IsZero() {
		return e.StartDate.Millis()
	}
	return 0, models.DateAbsent
}

// CanStillRegister reports whether registration for the event is open at
// the given instant. Open events and events without mandatory
// registration are always registerable; a missing or unreadable deadline
// also counts as open.
func CanStillRegister(e *models.Event, nowMs int64) bool {
	if e.IsOpenEvent {
		return true
	}
	if !e.IsRegistrationRequired {
		return true
	}
	ms, state := e.RegistrationDeadline.Millis()
	if state != models.DateKnown {
		return true
	}
	return ms >= nowMs
}
