// pkg/core/target.go
package core

// TargetKind tags the concrete type behind a MissionTarget.
type TargetKind uint8

const (
	KindControlPoint TargetKind = iota + 1
	KindGroundObject
	KindFrontLine
)

func (k TargetKind) String() string {
	switch k {
	case KindControlPoint:
		return "control_point"
	case KindGroundObject:
		return "ground_object"
	case KindFrontLine:
		return "front_line"
	default:
		return "unknown"
	}
}

// MissionTarget is anything a mission can be planned against.
type MissionTarget interface {
	Kind() TargetKind
	DisplayName() string
	Pos() Point
}
