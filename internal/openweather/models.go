package openweather

// DTOs for the OpenWeatherMap /data/2.5/forecast payload. Only the fields
// the snapshot mapping consumes are declared.

type forecastResponse struct {
	Cod  string         `json:"cod"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Weather []weatherBlock `json:"weather"`
	Clouds  cloudsBlock    `json:"clouds"`
	Wind    windBlock      `json:"wind"`
	Rain    *rainBlock     `json:"rain,omitempty"`
	Pop     float64        `json:"pop"`
	DtTxt   string         `json:"dt_txt"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type weatherBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type cloudsBlock struct {
	All int `json:"all"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type rainBlock struct {
	OneHour   float64 `json:"1h"`
	ThreeHour float64 `json:"3h"`
}

type errorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
