package theater

import (
	"fmt"
	"math"
	"sort"

	"github.com/dcs-liberation/theater/pkg/core"
)

// ClosestControlPoint returns the control point nearest to p. Fleets are
// skipped unless allowNaval is set. The first of equally distant points wins.
func (t *Theater) ClosestControlPoint(p core.Point, allowNaval bool) (*core.ControlPoint, error) {
	var (
		closest *core.ControlPoint
		best    = math.Inf(1)
	)
	for _, cp := range t.controlPoints {
		if cp.IsFleet && !allowNaval {
			continue
		}
		if d := p.DistanceTo(cp.Position); d < best {
			closest, best = cp, d
		}
	}
	if closest == nil {
		return nil, fmt.Errorf("no eligible control point: %w", ErrEmptyPopulation)
	}
	return closest, nil
}

// ClosestTarget returns the mission target nearest to p, scanning all
// control points, then all ground objects, then the active front lines.
// Fleets are eligible.
func (t *Theater) ClosestTarget(p core.Point) (core.MissionTarget, error) {
	if len(t.controlPoints) == 0 {
		return nil, fmt.Errorf("theater has no control points: %w", ErrEmptyPopulation)
	}

	var (
		closest core.MissionTarget
		best    = math.Inf(1)
	)
	consider := func(target core.MissionTarget) {
		if d := p.DistanceTo(target.Pos()); d < best {
			closest, best = target, d
		}
	}

	for _, cp := range t.controlPoints {
		consider(cp)
	}
	for _, cp := range t.controlPoints {
		for _, g := range cp.GroundObjects() {
			consider(g)
		}
	}
	for _, fl := range t.Conflicts() {
		consider(fl)
	}
	return closest, nil
}

// ClosestOpposingControlPoints returns the player and enemy control points
// that are nearest to each other. Player points form the outer loop, so the
// first minimum in that order wins ties.
func (t *Theater) ClosestOpposingControlPoints() (player, enemy *core.ControlPoint, err error) {
	players, enemies := t.PlayerPoints(), t.EnemyPoints()
	if len(players) == 0 || len(enemies) == 0 {
		return nil, nil, fmt.Errorf("%d player and %d enemy control points: %w",
			len(players), len(enemies), ErrEmptyPopulation)
	}

	best := math.Inf(1)
	for _, blue := range players {
		for _, red := range enemies {
			if d := blue.Position.DistanceTo(red.Position); d < best {
				player, enemy, best = blue, red, d
			}
		}
	}
	return player, enemy, nil
}

// HeadingToConflictFrom returns the heading from position towards the
// midpoint of the nearest and the farthest front line. It reports false if
// there are no front lines.
func (t *Theater) HeadingToConflictFrom(position core.Point) (core.Heading, bool) {
	conflicts := t.Conflicts()
	if len(conflicts) == 0 {
		return core.Heading{}, false
	}

	type ranked struct {
		pos  core.Point
		dist float64
	}
	ranks := make([]ranked, len(conflicts))
	for i, fl := range conflicts {
		pos := fl.Pos()
		ranks[i] = ranked{pos: pos, dist: position.DistanceTo(pos)}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].dist < ranks[j].dist })

	center := ranks[0].pos.Midpoint(ranks[len(ranks)-1].pos)
	return core.HeadingFromDegrees(position.HeadingTo(center)), true
}
