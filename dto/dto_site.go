package dto

import m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"

type SiteRequest struct {
	Name        string  `json:"name"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SiteUpdateRequest struct {
	Name        *string       `json:"name,omitempty"`
	Location    *string       `json:"location,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *m.SiteStatus `json:"status,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}
