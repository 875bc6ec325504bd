// Package api contains API contract definitions for the campaign analytics demo API.
// Version v1 represents the current stable API version.
package api

// Query parameters

// WindowQuery selects the time window for dashboard endpoints
type WindowQuery struct {
	Window int    `json:"window" query:"window"`
	Source string `json:"source" query:"source" validate:"omitempty,oneof=medium small"`
}

// Auth API Requests

// LoginRequest represents a demo login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Recommendation API Requests

// ApplyRecommendationsRequest represents a request to apply recommendations
type ApplyRecommendationsRequest struct {
	IDs []string `json:"ids" validate:"omitempty,max=100,dive,recid"`
}

// Assistant API Requests

// ChatRequest represents a research assistant question
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}
