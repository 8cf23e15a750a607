package player

// Player is the minimal roster entry the standings engine needs: an
// identity plus the display name surfaced in ranked output.
type Player struct {
	ID          string
	DisplayName string
}
