package audio

import "github.com/lixenwraith/sentry/event"

// Player plays cues
type Player interface {
	Play(c Cue)
}

// CueHandler turns turret events into sound cues
type CueHandler struct {
	player Player
}

// NewCueHandler creates a handler playing through p
func NewCueHandler(p Player) *CueHandler {
	return &CueHandler{player: p}
}

func (h *CueHandler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTargetAcquired,
		event.EventShotFired,
		event.EventTargetLost,
	}
}

func (h *CueHandler) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventTargetAcquired:
		h.player.Play(CueAcquire)
	case event.EventShotFired:
		h.player.Play(CueFire)
	case event.EventTargetLost:
		h.player.Play(CueLost)
	}
}
