package region

// Default returns the built-in region table.
func Default() *Table {
	return NewTable(
		Region{
			Name:           "Caucasus",
			Terrain:        "Caucasus",
			OverviewImage:  "caumap.gif",
			LandmapFile:    "caulandmap.json.gz",
			TimezoneOffset: 4,
			Daytime:        hours([2]int{6, 9}, [2]int{9, 18}, [2]int{18, 20}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              30.02,
				WinterAvgPressure:              29.72,
				SummerAvgTemperature:           22.5,
				WinterAvgTemperature:           3.0,
				TemperatureDayNightDifference:  6.0,
				HighAvgYearlyTurbulencePer10cm: 12,
				LowAvgYearlyTurbulencePer10cm:  1,
				SolarNoonTurbulencePer10cm:     3.5,
				MidnightTurbulencePer10cm:      -3,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 20, Cloudy: 60, ClearSkies: 20},
					WeatherTypeChances{Thunderstorm: 1, Raining: 20, Cloudy: 40, ClearSkies: 40},
					WeatherTypeChances{Thunderstorm: 1, Raining: 10, Cloudy: 35, ClearSkies: 55},
					WeatherTypeChances{Thunderstorm: 1, Raining: 30, Cloudy: 50, ClearSkies: 20},
				),
			},
		},
		Region{
			Name:           "Persian Gulf",
			Terrain:        "PersianGulf",
			OverviewImage:  "persiangulf.gif",
			LandmapFile:    "gulflandmap.json.gz",
			TimezoneOffset: 4,
			Daytime:        hours([2]int{6, 8}, [2]int{8, 16}, [2]int{16, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              29.98,
				WinterAvgPressure:              29.80,
				SummerAvgTemperature:           38.0,
				WinterAvgTemperature:           21.0,
				TemperatureDayNightDifference:  8.0,
				HighAvgYearlyTurbulencePer10cm: 8,
				LowAvgYearlyTurbulencePer10cm:  1,
				SolarNoonTurbulencePer10cm:     7,
				MidnightTurbulencePer10cm:      -2,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 30, Cloudy: 50, ClearSkies: 20},
					WeatherTypeChances{Thunderstorm: 1, Raining: 5, Cloudy: 30, ClearSkies: 65},
					WeatherTypeChances{Thunderstorm: 1, Raining: 5, Cloudy: 30, ClearSkies: 65},
					WeatherTypeChances{Thunderstorm: 1, Raining: 10, Cloudy: 45, ClearSkies: 45},
				),
			},
		},
		Region{
			Name:           "Nevada",
			Terrain:        "Nevada",
			OverviewImage:  "nevada.gif",
			LandmapFile:    "nevlandmap.json.gz",
			TimezoneOffset: -8,
			Daytime:        hours([2]int{4, 6}, [2]int{6, 17}, [2]int{17, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              30.05,
				WinterAvgPressure:              29.95,
				SummerAvgTemperature:           31.5,
				WinterAvgTemperature:           10.0,
				TemperatureDayNightDifference:  12.0,
				HighAvgYearlyTurbulencePer10cm: 10,
				LowAvgYearlyTurbulencePer10cm:  1,
				SolarNoonTurbulencePer10cm:     8,
				MidnightTurbulencePer10cm:      -4,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 10, Cloudy: 40, ClearSkies: 50},
					WeatherTypeChances{Thunderstorm: 1, Raining: 5, Cloudy: 30, ClearSkies: 65},
					WeatherTypeChances{Thunderstorm: 1, Raining: 2, Cloudy: 20, ClearSkies: 77},
					WeatherTypeChances{Thunderstorm: 1, Raining: 5, Cloudy: 30, ClearSkies: 65},
				),
			},
		},
		Region{
			Name:           "Normandy",
			Terrain:        "Normandy",
			OverviewImage:  "normandy.gif",
			LandmapFile:    "normandylandmap.json.gz",
			TimezoneOffset: 0,
			Daytime:        hours([2]int{6, 8}, [2]int{10, 17}, [2]int{17, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              30.02,
				WinterAvgPressure:              29.72,
				SummerAvgTemperature:           20.0,
				WinterAvgTemperature:           0.0,
				TemperatureDayNightDifference:  5.0,
				HighAvgYearlyTurbulencePer10cm: 20,
				LowAvgYearlyTurbulencePer10cm:  10,
				SolarNoonTurbulencePer10cm:     0,
				MidnightTurbulencePer10cm:      0,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 60, Cloudy: 40, ClearSkies: 0},
					WeatherTypeChances{Thunderstorm: 1, Raining: 40, Cloudy: 30, ClearSkies: 30},
					WeatherTypeChances{Thunderstorm: 1, Raining: 20, Cloudy: 30, ClearSkies: 50},
					WeatherTypeChances{Thunderstorm: 1, Raining: 30, Cloudy: 50, ClearSkies: 20},
				),
			},
		},
		Region{
			Name:           "The Channel",
			Terrain:        "TheChannel",
			OverviewImage:  "thechannel.gif",
			LandmapFile:    "channellandmap.json.gz",
			TimezoneOffset: 2,
			Daytime:        hours([2]int{6, 8}, [2]int{10, 17}, [2]int{17, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              30.02,
				WinterAvgPressure:              29.72,
				SummerAvgTemperature:           20.0,
				WinterAvgTemperature:           0.0,
				TemperatureDayNightDifference:  5.0,
				HighAvgYearlyTurbulencePer10cm: 20,
				LowAvgYearlyTurbulencePer10cm:  10,
				SolarNoonTurbulencePer10cm:     0,
				MidnightTurbulencePer10cm:      0,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 60, Cloudy: 40, ClearSkies: 0},
					WeatherTypeChances{Thunderstorm: 1, Raining: 40, Cloudy: 30, ClearSkies: 30},
					WeatherTypeChances{Thunderstorm: 1, Raining: 20, Cloudy: 30, ClearSkies: 50},
					WeatherTypeChances{Thunderstorm: 1, Raining: 30, Cloudy: 50, ClearSkies: 20},
				),
			},
		},
		Region{
			Name:           "Syria",
			Terrain:        "Syria",
			OverviewImage:  "syria.gif",
			LandmapFile:    "syrialandmap.json.gz",
			TimezoneOffset: 3,
			Daytime:        hours([2]int{6, 8}, [2]int{8, 16}, [2]int{16, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              29.92,
				WinterAvgPressure:              29.86,
				SummerAvgTemperature:           28.5,
				WinterAvgTemperature:           10.0,
				TemperatureDayNightDifference:  10.0,
				HighAvgYearlyTurbulencePer10cm: 12,
				LowAvgYearlyTurbulencePer10cm:  1,
				SolarNoonTurbulencePer10cm:     6,
				MidnightTurbulencePer10cm:      -3,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 1, Raining: 25, Cloudy: 50, ClearSkies: 25},
					WeatherTypeChances{Thunderstorm: 1, Raining: 10, Cloudy: 35, ClearSkies: 55},
					WeatherTypeChances{Thunderstorm: 1, Raining: 2, Cloudy: 15, ClearSkies: 83},
					WeatherTypeChances{Thunderstorm: 1, Raining: 10, Cloudy: 35, ClearSkies: 55},
				),
			},
		},
		Region{
			Name:           "MarianaIslands",
			Terrain:        "MarianaIslands",
			OverviewImage:  "marianaislands.gif",
			LandmapFile:    "marianaislandslandmap.json.gz",
			TimezoneOffset: 10,
			Daytime:        hours([2]int{6, 8}, [2]int{8, 16}, [2]int{16, 18}),
			Seasonal: SeasonalConditions{
				SummerAvgPressure:              29.85,
				WinterAvgPressure:              29.90,
				SummerAvgTemperature:           28.0,
				WinterAvgTemperature:           26.0,
				TemperatureDayNightDifference:  4.0,
				HighAvgYearlyTurbulencePer10cm: 10,
				LowAvgYearlyTurbulencePer10cm:  2,
				SolarNoonTurbulencePer10cm:     5,
				MidnightTurbulencePer10cm:      -2,
				WeatherTypeChances: chances(
					WeatherTypeChances{Thunderstorm: 2, Raining: 20, Cloudy: 40, ClearSkies: 38},
					WeatherTypeChances{Thunderstorm: 1, Raining: 15, Cloudy: 40, ClearSkies: 44},
					WeatherTypeChances{Thunderstorm: 10, Raining: 35, Cloudy: 40, ClearSkies: 15},
					WeatherTypeChances{Thunderstorm: 8, Raining: 30, Cloudy: 40, ClearSkies: 22},
				),
			},
		},
	)
}
