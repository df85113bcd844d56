package models

// ConfigEntry is one download target read from the input file
type ConfigEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
