package session

import "context"

// Fixed field names inside a session record. These match the layout the
// site has always used, so existing sessions survive a redeploy.
const (
	FieldUserID    = "user_id"
	FieldUserLevel = "user_level"
)

// Store is a key-value session store with a sliding inactivity TTL.
// A session left untouched longer than the TTL disappears on its own.
//
// Get reports (value, present, error): a missing session or field is
// (_, false, nil); only store I/O failures produce an error. Set writes
// all given fields in one atomic round-trip.
type Store interface {
	Get(ctx context.Context, sessionID, field string) (string, bool, error)
	Set(ctx context.Context, sessionID string, fields map[string]string) error
	Remove(ctx context.Context, sessionID string, fields ...string) error
	Flush(ctx context.Context, sessionID string) error
}
