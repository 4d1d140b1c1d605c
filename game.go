package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/puffball/common"
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/ecs/system"
	"github.com/milk9111/puffball/level"
	"github.com/milk9111/puffball/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var (
	platformColor   = color.RGBA{R: 90, G: 86, B: 82, A: 255}
	playerColor     = color.RGBA{R: 255, G: 170, B: 200, A: 255}
	enemyColor      = color.RGBA{R: 120, G: 200, B: 120, A: 255}
	inhalableColor  = color.RGBA{R: 220, G: 240, B: 140, A: 255}
	projectileColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	exitColor       = color.RGBA{R: 120, G: 140, B: 255, A: 96}
	zoneColor       = color.RGBA{R: 255, G: 220, B: 120, A: 64}
)

type Game struct {
	frames int
	debug  bool

	scene   *level.Scene
	watcher *prefabs.Watcher
}

func NewGame(levelName string, debug bool) (*Game, error) {
	g := &Game{debug: debug}

	if levelName == "" {
		levelName = "level_1"
	}
	levelName = strings.TrimSuffix(levelName, ".yaml")
	if err := g.loadScene(levelName); err != nil {
		return nil, err
	}

	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	return g, nil
}

func (g *Game) loadScene(name string) error {
	ctx, err := level.LoadContext(name + ".yaml")
	if err != nil {
		return fmt.Errorf("load scene %s: %w", name, err)
	}
	scene, err := level.NewScene(ctx, system.NewInputSystem())
	if err != nil {
		return fmt.Errorf("build scene %s: %w", name, err)
	}
	g.scene = scene
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("prefab %s changed, rebuilding scene", name)
			if err := g.loadScene(g.scene.Context().Name); err != nil {
				log.Printf("scene rebuild failed: %v", err)
			}
		case err := <-g.watcher.Errors:
			log.Printf("prefab watcher: %v", err)
		default:
		}
	}

	transition := g.scene.Step()
	if transition == nil {
		return nil
	}

	name := g.scene.Context().Name
	if !transition.Restart {
		if transition.Next == "" {
			log.Printf("scene %s exit has no destination, restarting", name)
		} else {
			name = transition.Next
		}
	}
	return g.loadScene(name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.scene.World()
	ctx := g.scene.Context()
	camX, camY := g.camera()

	for _, p := range ctx.Platforms {
		fillBox(screen, p.X-camX, p.Y-camY, p.Width, p.Height, platformColor)
	}

	ecs.ForEach(w, component.TagsComponent, func(e ecs.Entity, tags component.Tags) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		col, ok := ecs.Get(w, e, component.ColliderComponent)
		if !ok {
			return
		}
		if flicker, ok := ecs.Get(w, e, component.FlickerComponent); ok && !flicker.Visible() {
			return
		}

		c, stroke := entityColor(w, e, tags, col)
		x := t.X + col.OffsetX - col.Width/2 - camX
		y := t.Y + col.OffsetY - col.Height/2 - camY
		if stroke {
			vector.StrokeRect(screen, float32(x), float32(y), float32(col.Width), float32(col.Height), 1.0, c, false)
		} else {
			fillBox(screen, x, y, col.Width, col.Height, c)
		}
	})

	if g.debug {
		g.drawDebug(screen)
	}
}

func entityColor(w *ecs.World, e ecs.Entity, tags component.Tags, col *component.Collider) (color.RGBA, bool) {
	switch {
	case tags.Has(component.TagPlayer):
		return playerColor, false
	case tags.Has(component.TagProjectile):
		return projectileColor, false
	case tags.Has(component.TagEnemy):
		if ecs.Has(w, e, component.InhalableComponent) {
			return inhalableColor, false
		}
		return enemyColor, false
	case tags.Has(component.TagExit):
		return exitColor, false
	case tags.Has(component.TagCapture):
		// Only outlined while active.
		if col.Disabled {
			return zoneColor, true
		}
		return zoneColor, false
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}, false
}

func fillBox(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// camera follows the player, clamped to the scene bounds.
func (g *Game) camera() (float64, float64) {
	ctx := g.scene.Context()
	camX := ctx.Bounds.X
	camY := ctx.Bounds.Y
	if t, ok := ecs.Get(g.scene.World(), g.scene.Player(), component.TransformComponent); ok {
		camX = t.X - baseWidth/2
	}
	camX = common.Clamp(camX, ctx.Bounds.X, ctx.Bounds.X+ctx.Bounds.Width-baseWidth)
	camY = common.Clamp(camY, ctx.Bounds.Y, ctx.Bounds.Y+ctx.Bounds.Height-baseHeight)
	return camX, camY
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	w := g.scene.World()
	player := g.scene.Player()

	state := "?"
	if p, ok := ecs.Get(w, player, component.PlayerComponent); ok && p.Machine != nil {
		state = p.Machine.Current()
	}
	hp := 0
	if h, ok := ecs.Get(w, player, component.HealthComponent); ok {
		hp = h.Current
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f\nScene: %s    State: %s    HP: %d    Entities: %d",
		g.frames, ebiten.ActualFPS(),
		g.scene.Context().Name, state, hp, len(w.Entities()),
	))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
