package models

// Service describes a catalog entry offered by the studio.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
