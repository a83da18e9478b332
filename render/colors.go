package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sentry/component"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbFloor      = tcell.NewRGBColor(60, 62, 80)
	RgbWall       = tcell.NewRGBColor(150, 150, 160)
	RgbCover      = tcell.NewRGBColor(160, 120, 70)
	RgbThickRoof  = tcell.NewRGBColor(45, 40, 60)
	RgbThinRoof   = tcell.NewRGBColor(35, 35, 50)
	RgbGas        = tcell.NewRGBColor(70, 90, 40)

	RgbPlayer  = tcell.NewRGBColor(0, 200, 200)   // Vibrant cyan
	RgbHostile = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbNeutral = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbDowned  = tcell.NewRGBColor(120, 60, 60)

	RgbAimIdle     = tcell.NewRGBColor(80, 80, 100)
	RgbAimTracking = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbAimReady    = tcell.NewRGBColor(255, 255, 0) // Bright yellow
	RgbFire        = tcell.NewRGBColor(255, 255, 200)

	RgbStatusBar  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbPausedBg   = tcell.NewRGBColor(200, 50, 50)
)

// AimColor returns the ray color for a turret state
func AimColor(state component.TurretState) tcell.Color {
	switch state {
	case component.TurretTracking:
		return RgbAimTracking
	case component.TurretReady:
		return RgbAimReady
	default:
		return RgbAimIdle
	}
}
