// Package render draws the simulation world on a tcell screen
package render

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/status"
	"github.com/lixenwraith/sentry/vmath"
)

const defaultRayLength = 6

// aimGlyphs indexed by octant, 0° points down the screen (+Y)
var aimGlyphs = [8]rune{'↓', '↘', '→', '↗', '↑', '↖', '←', '↙'}

// Status is the sandbox state shown below the map
type Status struct {
	Scenario string
	Paused   bool
	Message  string           // Defaults to the last event metric
	Metrics  *status.Registry // Optional
}

// Renderer draws terrain, entities and turret aim rays
type Renderer struct {
	screen    tcell.Screen
	world     *engine.World
	offset    core.Point // World cell drawn at the screen's top-left corner
	RayLength int
}

// NewRenderer creates a renderer drawing the map at the top-left corner
func NewRenderer(screen tcell.Screen, world *engine.World) *Renderer {
	return &Renderer{
		screen:    screen,
		world:     world,
		RayLength: defaultRayLength,
	}
}

// SetWorld switches the world being drawn and resets the viewport
func (r *Renderer) SetWorld(world *engine.World) {
	r.world = world
	r.offset = core.Point{}
}

// RenderFrame draws one full frame and shows it
func (r *Renderer) RenderFrame(st Status) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	r.drawTerrain(defaultStyle)
	targeted := r.drawAimRays(defaultStyle)
	r.drawEntities(defaultStyle, targeted)
	r.drawStatusBar(st)

	r.screen.Show()
}

// TurretGlyph returns the arrow for an aim angle
func TurretGlyph(angle float64) rune {
	octant := int(math.Floor(vmath.NormalizeDegrees(angle)/45+0.5)) % 8
	return aimGlyphs[octant]
}

// Viewport returns the world cells visible above the status bar
func (r *Renderer) Viewport() core.Area {
	sw, sh := r.screen.Size()
	return core.Area{
		X:      r.offset.X,
		Y:      r.offset.Y,
		Width:  min(sw, r.world.Width()-r.offset.X),
		Height: min(sh-1, r.world.Height()-r.offset.Y),
	}
}

// Scroll moves the viewport, clamped so the map edge stays on screen
func (r *Renderer) Scroll(dx, dy int) {
	sw, sh := r.screen.Size()
	maxX := max(r.world.Width()-sw, 0)
	maxY := max(r.world.Height()-(sh-1), 0)
	r.offset.X = min(max(r.offset.X+dx, 0), maxX)
	r.offset.Y = min(max(r.offset.Y+dy, 0), maxY)
}

func (r *Renderer) set(p core.Point, ch rune, style tcell.Style) {
	if !r.Viewport().Contains(p) {
		return
	}
	r.screen.SetContent(p.X-r.offset.X, p.Y-r.offset.Y, ch, nil, style)
}

func (r *Renderer) drawTerrain(defaultStyle tcell.Style) {
	terrain := r.world.Terrain
	view := r.Viewport()
	for y := view.Y; y < view.Y+view.Height; y++ {
		for x := view.X; x < view.X+view.Width; x++ {
			p := core.Point{X: x, Y: y}
			cell := terrain.Cell(p)

			style := defaultStyle.Foreground(RgbFloor)
			switch cell.Roof {
			case engine.RoofThick:
				style = style.Background(RgbThickRoof)
			case engine.RoofThin:
				style = style.Background(RgbThinRoof)
			}
			if cell.Gas {
				style = style.Background(RgbGas)
			}

			ch := '.'
			switch {
			case cell.Wall:
				ch, style = '#', style.Foreground(RgbWall)
			case cell.Fill >= 0.7:
				ch, style = '▄', style.Foreground(RgbCover)
			case cell.Fill > 0:
				ch, style = '▁', style.Foreground(RgbCover)
			}
			r.set(p, ch, style)
		}
	}
}

// drawAimRays draws each turret's facing and returns the entities being targeted
func (r *Renderer) drawAimRays(defaultStyle tcell.Style) map[core.Entity]component.TurretState {
	targeted := make(map[core.Entity]component.TurretState)
	terrain := r.world.Terrain

	for _, e := range r.world.Components.Turret.GetAllEntities() {
		turret, _ := r.world.Components.Turret.GetComponent(e)
		from, ok := r.world.Positions.GetPosition(e)
		if !ok {
			continue
		}
		if turret.Target != 0 {
			targeted[turret.Target] = turret.State
		}

		dx, dy := vmath.DirectionFromDegrees(turret.Angle)
		to := core.Point{
			X: from.X + int(math.Round(dx*float64(r.RayLength))),
			Y: from.Y + int(math.Round(dy*float64(r.RayLength))),
		}
		style := defaultStyle.Foreground(AimColor(turret.State))
		vmath.TraverseCells(from, to, func(p core.Point) bool {
			if p == from {
				return true
			}
			if !terrain.InBounds(p) || terrain.BlocksSight(p) {
				return false
			}
			if p.DistSq(from) > r.RayLength*r.RayLength {
				return false
			}
			if !r.world.Positions.HasAnyAt(p) {
				r.set(p, '·', style.Background(r.background(p)))
			}
			return true
		})
	}
	return targeted
}

func (r *Renderer) background(p core.Point) tcell.Color {
	cell := r.world.Terrain.Cell(p)
	switch {
	case cell.Gas:
		return RgbGas
	case cell.Roof == engine.RoofThick:
		return RgbThickRoof
	case cell.Roof == engine.RoofThin:
		return RgbThinRoof
	default:
		return RgbBackground
	}
}

func (r *Renderer) drawEntities(defaultStyle tcell.Style, targeted map[core.Entity]component.TurretState) {
	w := r.world
	player := w.Factions.Player()
	tick := w.Tick()

	entities := w.Positions.GetAllEntities()
	slices.Sort(entities)

	for _, e := range entities {
		p, _ := w.Positions.GetPosition(e)
		faction, _ := w.Components.Faction.GetComponent(e)

		fg := RgbNeutral
		switch {
		case faction.ID == player && player != core.FactionNone:
			fg = RgbPlayer
		case w.Factions.Hostile(player, faction.ID):
			fg = RgbHostile
		}
		style := defaultStyle.Foreground(fg).Background(r.background(p))

		var ch rune
		if turret, ok := w.Components.Turret.GetComponent(e); ok {
			ch = TurretGlyph(turret.Angle)
			style = style.Bold(true)
			if rec, ok := w.Components.AttackRecord.GetComponent(e); ok && rec.Tick == tick && tick > 0 {
				style = style.Foreground(RgbFire)
			}
		} else if pawn, ok := w.Components.Pawn.GetComponent(e); ok {
			ch = pawnGlyph(pawn)
			if pawn.Downed {
				style = style.Foreground(RgbDowned)
			}
		} else if w.Components.Building.HasEntity(e) {
			ch = 'B'
		} else {
			ch = '?'
		}

		if w.Components.Burning.HasEntity(e) {
			style = style.Blink(true)
		}
		if state, ok := targeted[e]; ok {
			style = style.Reverse(true)
			if state == component.TurretReady {
				style = style.Underline(true)
			}
		}
		r.set(p, ch, style)
	}
}

func pawnGlyph(p component.PawnComponent) rune {
	switch p.Kind {
	case component.PawnAnimal:
		return 'a'
	case component.PawnMechanoid:
		return 'M'
	default:
		if p.Prisoner {
			return 'p'
		}
		return '@'
	}
}

func (r *Renderer) drawStatusBar(st Status) {
	sw, sh := r.screen.Size()
	if sh <= 0 {
		return
	}
	y := sh - 1
	style := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)

	var sb strings.Builder
	if st.Paused {
		sb.WriteString(" PAUSED ")
	}
	fmt.Fprintf(&sb, " %s | tick %d", st.Scenario, r.world.Tick())
	message := st.Message
	if st.Metrics != nil {
		if summary := st.Metrics.Summary(); summary != "" {
			sb.WriteString(" | ")
			sb.WriteString(summary)
		}
		if message == "" {
			message = st.Metrics.Text(status.MetricLastEvent).Load()
		}
	}

	turrets := r.world.Components.Turret.GetAllEntities()
	slices.Sort(turrets)
	for _, e := range turrets {
		turret, _ := r.world.Components.Turret.GetComponent(e)
		fmt.Fprintf(&sb, " | #%d %s %3.0f°", e, turret.State, turret.Angle)
		if turret.Target != 0 {
			fmt.Fprintf(&sb, " >#%d", turret.Target)
		}
	}
	if message != "" {
		sb.WriteString(" | ")
		sb.WriteString(message)
	}

	line := []rune(sb.String())
	for x := 0; x < sw; x++ {
		ch := ' '
		if x < len(line) {
			ch = line[x]
		}
		cellStyle := style
		if st.Paused && x < len(" PAUSED ") {
			cellStyle = cellStyle.Background(RgbPausedBg)
		}
		r.screen.SetContent(x, y, ch, nil, cellStyle)
	}
}
