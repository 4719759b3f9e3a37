package handlers

import (
	"github.com/dcs-liberation/theater/internal/theater"
	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/google/uuid"
)

// ControlPointResult is the JSON view of a control point.
type ControlPointResult struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Position core.Point `json:"position"`
	Captured bool       `json:"captured"`
	IsFleet  bool       `json:"isFleet"`
}

// TargetResult is the JSON view of a mission target.
type TargetResult struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name"`
	Position core.Point `json:"position"`
}

// OpposingResult is the closest player/enemy control point pair.
type OpposingResult struct {
	Player   ControlPointResult `json:"player"`
	Enemy    ControlPointResult `json:"enemy"`
	Distance float64            `json:"distance"`
}

// HeadingResult is the answer of a conflict heading query. Found is false
// when the player owns no front line.
type HeadingResult struct {
	Found   bool         `json:"found"`
	Heading core.Heading `json:"heading"`
}

// CountResult reports how many control points a state command handled.
type CountResult struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

func controlPointResult(cp *core.ControlPoint) ControlPointResult {
	return ControlPointResult{
		ID:       cp.ID,
		Name:     cp.Name,
		Position: cp.Position,
		Captured: cp.Captured,
		IsFleet:  cp.IsFleet,
	}
}

// args: "x,y"
func (s *Service) isOnLand(t *theater.Theater, args []string) (any, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	return t.IsOnLand(p), nil
}

// args: "x,y"
func (s *Service) isInSea(t *theater.Theater, args []string) (any, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	return t.IsInSea(p), nil
}

// args: "x,y" [extendDist]
func (s *Service) nearestLand(t *theater.Theater, args []string) (any, error) {
	near, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	extend, err := floatArg(args, 1, theater.DefaultExtendDistance)
	if err != nil {
		return nil, err
	}

	region := t.Region().Name
	if s.deps.Cache != nil {
		if p, ok := s.deps.Cache.Get(region, near, extend); ok {
			return p, nil
		}
	}

	p, err := t.NearestLandPos(near, extend)
	if err != nil {
		return nil, err
	}
	if s.deps.Cache != nil {
		s.deps.Cache.Add(region, near, extend, p)
	}
	return p, nil
}

// args: "x,y" [allowNaval]
func (s *Service) closestControlPoint(t *theater.Theater, args []string) (any, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	allowNaval, err := boolArg(args, 1, false)
	if err != nil {
		return nil, err
	}

	cp, err := t.ClosestControlPoint(p, allowNaval)
	if err != nil {
		return nil, err
	}
	return controlPointResult(cp), nil
}

// args: "x,y"
func (s *Service) closestTarget(t *theater.Theater, args []string) (any, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}

	target, err := t.ClosestTarget(p)
	if err != nil {
		return nil, err
	}
	return TargetResult{
		Kind:     target.Kind().String(),
		Name:     target.DisplayName(),
		Position: target.Pos(),
	}, nil
}

func (s *Service) closestOpposing(t *theater.Theater, args []string) (any, error) {
	player, enemy, err := t.ClosestOpposingControlPoints()
	if err != nil {
		return nil, err
	}
	return OpposingResult{
		Player:   controlPointResult(player),
		Enemy:    controlPointResult(enemy),
		Distance: player.Position.DistanceTo(enemy.Position),
	}, nil
}

// args: "x,y"
func (s *Service) conflictHeading(t *theater.Theater, args []string) (any, error) {
	p, err := pointArg(args, 0)
	if err != nil {
		return nil, err
	}
	h, ok := t.HeadingToConflictFrom(p)
	return HeadingResult{Found: ok, Heading: h}, nil
}

// args: name
func (s *Service) controlPointNamed(t *theater.Theater, args []string) (any, error) {
	name, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	cp, err := t.ControlPointNamed(name)
	if err != nil {
		return nil, err
	}
	return controlPointResult(cp), nil
}
