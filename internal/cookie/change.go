package cookie

// Cause classifies a change event, matching the Chromium change-cause
// vocabulary.
type Cause string

const (
	// CauseExplicit is an insert or a deliberate delete.
	CauseExplicit Cause = "explicit"
	// CauseOverwrite is the removal half of an update; it is always followed
	// by an explicit insert carrying the new state, so consumers ignore it.
	CauseOverwrite Cause = "overwrite"
	// CauseExpired is a removal because the cookie's expiry passed.
	CauseExpired Cause = "expired"
	// CauseEvicted is a removal by the browser's garbage collection.
	CauseEvicted Cause = "evicted"
)

// ChangeEvent describes one mutation of the host cookie set.
type ChangeEvent struct {
	Cookie  Record
	Removed bool
	Cause   Cause
}
