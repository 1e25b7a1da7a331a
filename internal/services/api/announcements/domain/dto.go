// Package domain holds DTOs for announcement http and service contracts
package domain

import "villagevisits/internal/core/entity"

// AnnouncementInput is the body of POST /announcements
type AnnouncementInput struct {
	Title       string `json:"title" validate:"required,max=200" example:"Community work"`
	Description string `json:"description" validate:"required,max=5000" example:"Umuganda starts at 8am near the market"`
}

// Posted is the answer to a new announcement
type Posted struct {
	Announcement *entity.Announcement `json:"announcement"`
	CreatedBy    *entity.User         `json:"createdBy"`
}

// Deleted acknowledges a removal
type Deleted struct {
	ID string `json:"id"`
}
