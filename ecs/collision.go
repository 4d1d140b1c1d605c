package ecs

import "github.com/milk9111/puffball/ecs/component"

// PairHandler reacts to an overlap edge between two entities. Handlers for
// destructive rules must check Destroyed first: the other party may already
// have been claimed by another rule this tick.
type PairHandler func(w *World, a, b Entity)

type tagPair struct {
	a component.Tag
	b component.Tag
}

type entityPair struct {
	a Entity
	b Entity
}

type collisionRule struct {
	tags  tagPair
	begin []PairHandler
	end   []PairHandler

	// Active pairs, kept as list + set so end events dispatch in the order
	// the overlaps began.
	activeList []entityPair
	activeSet  map[entityPair]bool
}

// Router converts continuous overlap into edge-triggered begin/end events
// keyed by capability tags. Begin fires exactly once when a pair's bounds
// start intersecting and end exactly once when they stop, including when a
// member is destroyed or its collider disabled mid-overlap.
type Router struct {
	rules []*collisionRule
	index map[tagPair]*collisionRule
}

func newRouter() *Router {
	return &Router{index: make(map[tagPair]*collisionRule)}
}

func (r *Router) rule(tagA, tagB component.Tag) *collisionRule {
	key := tagPair{a: tagA, b: tagB}
	if rule, ok := r.index[key]; ok {
		return rule
	}
	rule := &collisionRule{tags: key, activeSet: make(map[entityPair]bool)}
	r.index[key] = rule
	r.rules = append(r.rules, rule)
	return rule
}

// OnBegin registers a handler for the start of overlap between an entity
// tagged tagA and one tagged tagB. The tagA entity is passed first.
func (r *Router) OnBegin(tagA, tagB component.Tag, h PairHandler) {
	if h == nil {
		return
	}
	rule := r.rule(tagA, tagB)
	rule.begin = append(rule.begin, h)
}

// OnEnd registers a handler for the end of overlap.
func (r *Router) OnEnd(tagA, tagB component.Tag, h PairHandler) {
	if h == nil {
		return
	}
	rule := r.rule(tagA, tagB)
	rule.end = append(rule.end, h)
}

type aabb struct {
	x, y, w, h float64
}

func (a aabb) overlaps(b aabb) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

type candidate struct {
	entity Entity
	tags   component.Tags
	box    aabb
}

// Sweep detects overlaps for every registered rule and dispatches the edge
// events. Order between distinct pairs follows storage and registration
// order, so identical worlds sweep identically.
func (r *Router) Sweep(w *World) {
	if r == nil || len(r.rules) == 0 {
		return
	}

	var candidates []candidate
	ForEach(w, component.TagsComponent, func(e Entity, tags component.Tags) {
		c, ok := Get(w, e, component.ColliderComponent)
		if !ok || c.Disabled || c.Width <= 0 || c.Height <= 0 {
			return
		}
		t, ok := Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		candidates = append(candidates, candidate{
			entity: e,
			tags:   tags,
			box: aabb{
				x: t.X + c.OffsetX - c.Width/2,
				y: t.Y + c.OffsetY - c.Height/2,
				w: c.Width,
				h: c.Height,
			},
		})
	})

	for _, rule := range r.rules {
		r.sweepRule(w, rule, candidates)
	}
}

func (r *Router) sweepRule(w *World, rule *collisionRule, candidates []candidate) {
	overlapping := make(map[entityPair]bool)
	var began []entityPair

	for _, a := range candidates {
		if !a.tags.Has(rule.tags.a) {
			continue
		}
		for _, b := range candidates {
			if a.entity == b.entity || !b.tags.Has(rule.tags.b) {
				continue
			}
			if !a.box.overlaps(b.box) {
				continue
			}
			pair := entityPair{a: a.entity, b: b.entity}
			overlapping[pair] = true
			if !rule.activeSet[pair] {
				rule.activeSet[pair] = true
				rule.activeList = append(rule.activeList, pair)
				began = append(began, pair)
			}
		}
	}

	// Ends first would let a pair's begin follow its own end after a gap;
	// within one tick a pair can only do one or the other, so dispatch
	// begins then ends.
	for _, pair := range began {
		for _, h := range rule.begin {
			h(w, pair.a, pair.b)
		}
	}

	kept := rule.activeList[:0]
	var ended []entityPair
	for _, pair := range rule.activeList {
		if overlapping[pair] {
			kept = append(kept, pair)
			continue
		}
		delete(rule.activeSet, pair)
		ended = append(ended, pair)
	}
	rule.activeList = kept

	for _, pair := range ended {
		for _, h := range rule.end {
			h(w, pair.a, pair.b)
		}
	}
}
