package models

// Badge is a derived achievement descriptor. Badges are recomputed on every
// evaluation and never persisted.
type Badge struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
