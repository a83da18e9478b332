package main

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sentry/core"
)

// clockService posts one interrupt event per simulation tick to the screen's event loop
type clockService struct {
	screen   tcell.Screen
	interval time.Duration
	done     chan struct{}
}

func newClockService(screen tcell.Screen) *clockService {
	return &clockService{screen: screen}
}

func (c *clockService) Name() string           { return "clock" }
func (c *clockService) Dependencies() []string { return nil }

// Init takes the tick rate in ticks per second
func (c *clockService) Init(args ...any) error {
	rate, ok := 0, false
	if len(args) > 0 {
		rate, ok = args[0].(int)
	}
	if !ok || rate <= 0 {
		return errors.New("clock needs a positive tick rate")
	}
	c.interval = time.Second / time.Duration(rate)
	return nil
}

func (c *clockService) Start() error {
	c.done = make(chan struct{})
	done := c.done
	core.Go(func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A full event queue drops the tick, the loop catches up on the next one
				_ = c.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	})
	return nil
}

func (c *clockService) Stop() error {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	return nil
}
