package component

import "github.com/lixenwraith/sentry/core"

// FactionComponent assigns an entity to a faction
// Entities without it are treated as core.FactionNone
type FactionComponent struct {
	ID core.FactionID
}
