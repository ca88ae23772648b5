package dto

import "github.com/yigit/htiportal/internal/app/models"

// PublishRequest toggles an offering's visibility.
type PublishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// OfferingsResponse lists course offerings.
type OfferingsResponse struct {
	Offerings []*models.CourseOffering `json:"offerings"`
}

// OfferingResponse wraps a single course offering.
type OfferingResponse struct {
	Offering *models.CourseOffering `json:"offering"`
}

// SessionsResponse lists academic sessions.
type SessionsResponse struct {
	OK       bool              `json:"ok"`
	Sessions []*models.Session `json:"sessions"`
}

// ProgramsResponse lists programs.
type ProgramsResponse struct {
	Programs []*models.Program `json:"programs"`
}
