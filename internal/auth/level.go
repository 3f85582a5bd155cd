package auth

// Level is the authorization tier of a principal.
// Admins manage users and estates; ordinary users only read.
type Level string

const (
	LevelAdmin Level = "Admin"
	LevelUser  Level = "User"
)

// ParseLevel maps a stored role string back to a Level.
// Unknown values are rejected rather than defaulted.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelAdmin:
		return LevelAdmin, true
	case LevelUser:
		return LevelUser, true
	default:
		return "", false
	}
}

func (l Level) String() string {
	return string(l)
}
