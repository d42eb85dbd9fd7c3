package dto

type ChartPointResponse struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label,omitempty"`
}

type ChartResponse struct {
	View          string               `json:"view"`
	Title         string               `json:"title"`
	Kind          string               `json:"kind"`
	Orientation   string               `json:"orientation,omitempty"`
	CategoryAxis  string               `json:"category_axis"`
	ValueAxis     string               `json:"value_axis"`
	ColorScale    string               `json:"color_scale"`
	LocationMode  string               `json:"location_mode,omitempty"`
	Scope         string               `json:"scope,omitempty"`
	CategoryOrder string               `json:"category_order,omitempty"`
	Filters       map[string]string    `json:"filters"`
	Points        []ChartPointResponse `json:"points"`
}
