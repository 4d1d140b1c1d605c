package level

import (
	"fmt"

	"github.com/milk9111/puffball/prefabs"
)

type Point struct {
	X float64
	Y float64
}

type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Context is everything one scene needs, constructed once per scene and
// passed into the orchestrator and entity factories. There is no ambient
// current-scene state.
type Context struct {
	Name string
	// Next is the opaque name of the scene the exit region leads to.
	Next string

	FallY  float64
	Margin float64
	Bounds Box

	PlayerStart Point
	Platforms   []Box
	// Spawns groups spawn points by archetype category. A missing
	// category spawns nothing; the scene proceeds.
	Spawns map[string][]Point
	Exits  []Box

	// Seed drives the scene's random source (flyer speeds). Scenes built
	// from the same context replay identically.
	Seed int64
}

// LoadContext builds a scene context from a level spec file. Level data is
// produced by the map tooling; this layer treats its strings as opaque.
func LoadContext(filename string) (*Context, error) {
	spec, err := prefabs.LoadLevelSpec(filename)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	ctx := &Context{
		Name:        spec.Name,
		Next:        spec.Next,
		FallY:       spec.FallY,
		Margin:      spec.Margin,
		Bounds:      Box{X: spec.Bounds.X, Y: spec.Bounds.Y, Width: spec.Bounds.Width, Height: spec.Bounds.Height},
		PlayerStart: Point{X: spec.PlayerStart.X, Y: spec.PlayerStart.Y},
		Spawns:      make(map[string][]Point, len(spec.Spawns)),
		Seed:        1,
	}
	for _, p := range spec.Platforms {
		ctx.Platforms = append(ctx.Platforms, Box{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height})
	}
	for category, points := range spec.Spawns {
		for _, p := range points {
			ctx.Spawns[category] = append(ctx.Spawns[category], Point{X: p.X, Y: p.Y})
		}
	}
	for _, b := range spec.Exits {
		ctx.Exits = append(ctx.Exits, Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
	}
	return ctx, nil
}
