package dto

import "time"

type ViewResponse struct {
	ID      string   `json:"id"`
	Tab     string   `json:"tab"`
	Header  string   `json:"header"`
	Filters []string `json:"filters"`
}

type OptionsResponse struct {
	Field   string   `json:"field"`
	Options []string `json:"options"`
}

type HealthResponse struct {
	Status       string          `json:"status"`
	Records      int             `json:"records"`
	Source       string          `json:"source"`
	LoadedAt     time.Time       `json:"loaded_at"`
	Dependencies map[string]bool `json:"dependencies"`
}
