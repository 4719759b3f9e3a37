package region

import "time"

// Season of the northern-hemisphere calendar.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// SeasonOf returns the meteorological season for the month of t.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

// WeatherTypeChances are relative weights, not probabilities.
type WeatherTypeChances struct {
	Thunderstorm float64 `yaml:"thunderstorm" json:"thunderstorm"`
	Raining      float64 `yaml:"raining" json:"raining"`
	Cloudy       float64 `yaml:"cloudy" json:"cloudy"`
	ClearSkies   float64 `yaml:"clear_skies" json:"clear_skies"`
}

// SeasonalConditions describes the climate of a region.
// Pressures are in inHg, temperatures in degrees Celsius.
type SeasonalConditions struct {
	SummerAvgPressure             float64 `yaml:"summer_avg_pressure" json:"summer_avg_pressure"`
	WinterAvgPressure             float64 `yaml:"winter_avg_pressure" json:"winter_avg_pressure"`
	SummerAvgTemperature          float64 `yaml:"summer_avg_temperature" json:"summer_avg_temperature"`
	WinterAvgTemperature          float64 `yaml:"winter_avg_temperature" json:"winter_avg_temperature"`
	TemperatureDayNightDifference float64 `yaml:"temperature_day_night_difference" json:"temperature_day_night_difference"`

	HighAvgYearlyTurbulencePer10cm float64 `yaml:"high_avg_yearly_turbulence_per_10cm" json:"high_avg_yearly_turbulence_per_10cm"`
	LowAvgYearlyTurbulencePer10cm  float64 `yaml:"low_avg_yearly_turbulence_per_10cm" json:"low_avg_yearly_turbulence_per_10cm"`
	SolarNoonTurbulencePer10cm     float64 `yaml:"solar_noon_turbulence_per_10cm" json:"solar_noon_turbulence_per_10cm"`
	MidnightTurbulencePer10cm      float64 `yaml:"midnight_turbulence_per_10cm" json:"midnight_turbulence_per_10cm"`

	WeatherTypeChances map[Season]WeatherTypeChances `yaml:"weather_type_chances" json:"weather_type_chances"`
}

// ChancesFor returns the weather weights for season, or false if unset.
func (s SeasonalConditions) ChancesFor(season Season) (WeatherTypeChances, bool) {
	c, ok := s.WeatherTypeChances[season]
	return c, ok
}

func chances(winter, spring, summer, fall WeatherTypeChances) map[Season]WeatherTypeChances {
	return map[Season]WeatherTypeChances{
		Winter: winter,
		Spring: spring,
		Summer: summer,
		Fall:   fall,
	}
}
