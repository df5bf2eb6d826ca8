package models

// WeatherData is the fixed-shape record returned for a single lookup.
// Temp is the current temperature in whole degrees Celsius, truncated.
type WeatherData struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Temp        int    `json:"temp"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
