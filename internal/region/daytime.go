package region

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeOfDay names one period of a DaytimeMap.
type TimeOfDay string

const (
	Dawn  TimeOfDay = "dawn"
	Day   TimeOfDay = "day"
	Dusk  TimeOfDay = "dusk"
	Night TimeOfDay = "night"
)

// ClockTime is a wall-clock time within a day, stored as minutes past midnight.
type ClockTime int

// At builds a ClockTime from hours and minutes.
func At(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ClockTimeOf returns the clock time of t in t's location.
func ClockTimeOf(t time.Time) ClockTime {
	return At(t.Hour(), t.Minute())
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalYAML writes the clock time as "HH:MM".
func (c ClockTime) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts "HH:MM".
func (c *ClockTime) UnmarshalYAML(node *yaml.Node) error {
	t, err := time.Parse("15:04", node.Value)
	if err != nil {
		return fmt.Errorf("invalid clock time %q: %w", node.Value, err)
	}
	*c = At(t.Hour(), t.Minute())
	return nil
}

// Period is a half-open [Start, End) window of the day.
type Period struct {
	Start ClockTime `yaml:"start" json:"start"`
	End   ClockTime `yaml:"end" json:"end"`
}

// Contains reports whether c falls within the period.
func (p Period) Contains(c ClockTime) bool {
	return p.Start <= c && c < p.End
}

// DaytimeMap holds the local-time windows of each part of the day.
type DaytimeMap struct {
	Dawn  Period `yaml:"dawn" json:"dawn"`
	Day   Period `yaml:"day" json:"day"`
	Dusk  Period `yaml:"dusk" json:"dusk"`
	Night Period `yaml:"night" json:"night"`
}

// BestGuessTimeOfDayAt maps a clock time to a period. Times that fall in
// gaps between the configured windows count as night.
func (d DaytimeMap) BestGuessTimeOfDayAt(c ClockTime) TimeOfDay {
	switch {
	case d.Dawn.Contains(c):
		return Dawn
	case d.Day.Contains(c):
		return Day
	case d.Dusk.Contains(c):
		return Dusk
	default:
		return Night
	}
}

func hours(dawn, day, dusk [2]int) DaytimeMap {
	return DaytimeMap{
		Dawn:  Period{At(dawn[0], 0), At(dawn[1], 0)},
		Day:   Period{At(day[0], 0), At(day[1], 0)},
		Dusk:  Period{At(dusk[0], 0), At(dusk[1], 0)},
		Night: Period{At(0, 0), At(5, 0)},
	}
}
