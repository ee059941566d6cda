package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpscontroller/camera"
	"github.com/milk9111/fpscontroller/common"
	"github.com/milk9111/fpscontroller/controller"
	"github.com/milk9111/fpscontroller/ecs"
	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/milk9111/fpscontroller/interact"
	"github.com/milk9111/fpscontroller/logging"
	"github.com/milk9111/fpscontroller/physics"
	"github.com/milk9111/fpscontroller/physics/arena"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/settings"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	propLayer physics.Layer = 6
)

type Game struct {
	frames int
	paused bool

	settings settings.Settings
	log      zerolog.Logger

	bus     *ecs.EventBus
	input   *Input
	hud     *HUD
	steps   *Footsteps
	arena   *arena.World
	capsule *arena.Capsule
	lens    *camera.Lens
	ctrl    *controller.Controller
	watcher *prefabs.Watcher

	lampID physics.ColliderID
	lamp   *interact.Scripted
	lit    bool
}

func NewGame(cfg settings.Settings, log zerolog.Logger) (*Game, error) {
	g := &Game{
		settings: cfg,
		log:      log,
		bus:      ecs.DefaultBus,
		input:    NewInput(cfg.MouseSens),
		arena:    arena.NewWorld(logging.Component(log, "arena")),
		lens:     camera.NewLens(mgl64.Vec3{0, 0.6, 0}, 60),
	}
	capsule, err := g.arena.NewCapsule(arena.CapsuleSpec{
		Position:   mgl64.Vec3{0, 1.2, -5},
		Height:     2,
		Radius:     0.5,
		SlopeLimit: 45,
		StepOffset: 0.3,
	})
	if err != nil {
		return nil, err
	}
	g.capsule = capsule

	if err := g.buildArena(); err != nil {
		return nil, err
	}

	spec, err := prefabs.LoadCharacterSpec(cfg.Spec)
	if err != nil {
		return nil, err
	}
	ctrlLog := logging.Component(log, "controller")
	g.ctrl, err = controller.New(spec, controller.Deps{
		Collider: g.capsule,
		Camera:   g.lens,
		Scene:    g.arena,
		Targets:  g.arena,
		Bus:      g.bus,
		Logger:   &ctrlLog,
	})
	if err != nil {
		return nil, err
	}
	g.ctrl.Enable()
	g.hud = NewHUD(g.bus, g.ctrl.State())
	if cfg.Volume > 0 {
		g.steps = NewFootsteps(g.bus, cfg.Volume)
	}

	if cfg.Watch {
		g.startWatcher()
	}
	return g, nil
}

func (g *Game) buildArena() error {
	w := g.arena
	boxes := []arena.BoxSpec{
		{Name: "wood floor", Min: mgl64.Vec2{-15, -15}, Max: mgl64.Vec2{0, 15}, Bottom: -1, Top: 0, Tag: "Footsteps/WOOD"},
		{Name: "grass floor", Min: mgl64.Vec2{0, -15}, Max: mgl64.Vec2{15, 15}, Bottom: -1, Top: 0, Tag: "Footsteps/GRASS"},
		{Name: "metal plate", Min: mgl64.Vec2{-6, -6}, Max: mgl64.Vec2{-2, -2}, Bottom: -1, Top: 0.05, Tag: "Footsteps/METAL"},
		{Name: "beam", Min: mgl64.Vec2{-12, 0}, Max: mgl64.Vec2{-8, 1}, Bottom: 1.2, Top: 1.6},
	}
	for _, b := range boxes {
		if _, err := w.AddBox(b); err != nil {
			return fmt.Errorf("arena: %s: %w", b.Name, err)
		}
	}

	corners := []mgl64.Vec2{{-15, -15}, {15, -15}, {15, 15}, {-15, 15}}
	for i, from := range corners {
		to := corners[(i+1)%len(corners)]
		if _, err := w.AddWall(arena.WallSpec{Name: fmt.Sprintf("wall %d", i), From: from, To: to, Thickness: 0.5, Bottom: 0, Top: 3}); err != nil {
			return err
		}
	}

	ramp := arena.RampSpec{
		BoxSpec:   arena.BoxSpec{Name: "steep ramp", Min: mgl64.Vec2{6, 6}, Max: mgl64.Vec2{10, 10}, Bottom: -1, Top: 0.01, Tag: "Footsteps/GRASS"},
		Direction: mgl64.Vec2{0, 1},
		Rise:      6,
	}
	if _, err := w.AddRamp(ramp); err != nil {
		return err
	}

	door, err := w.AddBox(arena.BoxSpec{Name: "door", Min: mgl64.Vec2{-1, 8}, Max: mgl64.Vec2{1, 8.3}, Bottom: 0, Top: 2.5, Layer: propLayer})
	if err != nil {
		return err
	}
	crate, err := w.AddBox(arena.BoxSpec{Name: "crate", Min: mgl64.Vec2{3, -1}, Max: mgl64.Vec2{4, 0}, Bottom: 0, Top: 1, Layer: propLayer, Tag: "Footsteps/METAL"})
	if err != nil {
		return err
	}
	sign, err := w.AddPillar(arena.PillarSpec{Name: "sign", Center: mgl64.Vec2{-3, 6}, Radius: 0.4, Bottom: 0, Top: 2, Layer: propLayer})
	if err != nil {
		return err
	}
	lamp, err := w.AddPillar(arena.PillarSpec{Name: "lamp", Center: mgl64.Vec2{3, 6}, Radius: 0.3, Bottom: 0, Top: 1.5, Layer: propLayer})
	if err != nil {
		return err
	}
	g.lampID = lamp.ID

	targets := logging.Component(g.log, "target")
	err = attachAll(w,
		attachment{door.ID, interact.NewDoor("door", mgl64.Vec3{0, 0, 8.15}, mgl64.Vec3{0, 0, 1}, g.capsule.Position, targets)},
		attachment{crate.ID, interact.NewPickup("crate", func(item string) {
			g.hud.Message = "picked up " + item
			targets.Info().Str("item", item).Msg("item collected")
		})},
		attachment{sign.ID, interact.NewStub("sign", targets)},
	)
	if err != nil {
		return err
	}
	return g.loadLamp()
}

type attachment struct {
	id     physics.ColliderID
	target interact.Focusable
}

func attachAll(w *arena.World, list ...attachment) error {
	for _, a := range list {
		if err := w.Attach(a.id, a.target); err != nil {
			return fmt.Errorf("arena: attach %d: %w", a.id, err)
		}
	}
	return nil
}

func (g *Game) loadLamp() error {
	src, err := prefabs.LoadScript(g.settings.Lamp)
	if err != nil {
		return fmt.Errorf("lamp: %w", err)
	}
	lamp, err := interact.NewScripted("lamp", src, logging.Component(g.log, "script"))
	if err != nil {
		return err
	}
	lamp.OnEmit = func(name string) { g.lit = name == "lamp_on" }
	if err := g.arena.Attach(g.lampID, lamp); err != nil {
		return err
	}
	g.lamp = lamp
	return nil
}

func (g *Game) startWatcher() {
	if !dirExists(prefabs.Dir) {
		g.log.Info().Str("dir", prefabs.Dir).Msg("no prefab directory, hot reload off")
		return
	}
	dirs := []string{prefabs.Dir}
	if scripts := filepath.Join(prefabs.Dir, "scripts"); dirExists(scripts) {
		dirs = append(dirs, scripts)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn().Err(err).Msg("prefab watcher unavailable")
		return
	}
	g.watcher = w
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (g *Game) pollWatcher() {
	for g.watcher != nil {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(c)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(c prefabs.Change) {
	name, ok := prefabs.Rel(c.Path)
	if !ok {
		return
	}
	switch c.Kind {
	case prefabs.ChangeSpec:
		if name != g.settings.Spec {
			return
		}
		spec, err := prefabs.LoadCharacterSpec(name)
		if err == nil {
			err = g.ctrl.Reload(spec)
		}
		if err != nil {
			g.log.Warn().Err(err).Str("spec", name).Msg("character spec not reloaded")
			g.hud.Message = "spec error, see log"
			return
		}
		g.hud.Message = "reloaded " + name
	case prefabs.ChangeScript:
		if name != g.settings.Lamp {
			return
		}
		if err := g.loadLamp(); err != nil {
			g.log.Warn().Err(err).Str("script", name).Msg("lamp script not reloaded")
			return
		}
		g.lit = false
		g.hud.Message = "reloaded " + name
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.ctrl.SetCanMove(!g.paused)
	if g.paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.input.Update()
	if g.input.Pause {
		g.togglePause()
	}
	if g.input.Damage {
		g.bus.Publish(ecs.Event{
			Type: ecs.EventTakeDamage,
			Data: ecs.DamageRequest{Target: g.ctrl.ID(), Amount: g.settings.Damage},
		})
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.ctrl.Tick(dt, g.input.Snapshot)
	g.arena.Tick(dt)
	return nil
}

func (g *Game) Close() {
	g.hud.Close()
	if g.steps != nil {
		g.steps.Close()
	}
	g.ctrl.Despawn()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// toScreen maps a world XZ point into the top-down view centred on the player.
func (g *Game) toScreen(p, player mgl64.Vec3) (float32, float32) {
	s := g.settings.Scale
	x := baseWidth/2 + (p.X()-player.X())*s
	y := baseHeight/2 - (p.Z()-player.Z())*s
	return float32(x), float32(y)
}

func (g *Game) solidColor(s *arena.Solid, focus physics.ColliderID) (color.Color, bool) {
	if s.ID == focus {
		return colornames.Yellow, true
	}
	target, _ := g.arena.Target(s.ID)
	switch t := target.(type) {
	case *interact.Door:
		if t.Open {
			return colornames.Lightgreen, true
		}
		return colornames.Sienna, true
	case *interact.Pickup:
		return colornames.Goldenrod, !t.Collected
	case *interact.Scripted:
		if g.lit {
			return colornames.Orange, true
		}
		return colornames.Darkslategray, true
	case interact.Focusable:
		return colornames.Mediumpurple, true
	}
	switch s.Tag {
	case "Footsteps/WOOD":
		return colornames.Saddlebrown, true
	case "Footsteps/GRASS":
		if s.Slope() > 0 {
			return colornames.Olivedrab, true
		}
		return colornames.Darkgreen, true
	case "Footsteps/METAL":
		return colornames.Slategray, true
	}
	if s.Bottom > 0 {
		return colornames.Peru, true
	}
	return colornames.Dimgray, true
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	state := g.ctrl.State()
	player := state.Position

	for _, s := range g.arena.Solids() {
		clr, visible := g.solidColor(s, state.FocusCollider)
		if !visible {
			continue
		}
		min, max := s.Bounds()
		x0, y0 := g.toScreen(mgl64.Vec3{min.X(), 0, max.Y()}, player)
		x1, y1 := g.toScreen(mgl64.Vec3{max.X(), 0, min.Y()}, player)
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
	}

	cx, cy := g.toScreen(player, player)
	radius := float32(g.capsule.Radius() * g.settings.Scale)
	body := color.Color(colornames.Dodgerblue)
	if state.Crouch != component.Standing {
		body = colornames.Lightskyblue
	}
	if state.Dead {
		body = colornames.Red
	}
	vector.FillCircle(screen, cx, cy, radius, body, true)

	ray := player.Add(common.Forward(state.Yaw).Mul(2))
	rx, ry := g.toScreen(ray, player)
	vector.StrokeLine(screen, cx, cy, rx, ry, 2, colornames.White, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	g.hud.Draw(screen, state)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "Paused (Esc)", baseWidth/2-40, baseHeight/2-60)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
