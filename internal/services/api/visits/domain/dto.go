// Package domain holds DTOs for visit http and service contracts
package domain

import (
	"io"
	"time"

	perr "villagevisits/internal/platform/errors"
)

// VisitorInput describes a visitor inline, an existing one is reused when found
type VisitorInput struct {
	FullName    string `json:"fullName" validate:"required,max=200" example:"Jean Bosco Niyonzima"`
	NID         string `json:"NID" validate:"omitempty,nid" example:"1198780012345678"`
	Email       string `json:"email" validate:"omitempty,email" example:"jean@example.com"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone" example:"250788000444"`
	Gender      string `json:"gender" validate:"required,oneof=male female other" example:"male"`
	Nationality string `json:"nationality" validate:"required,max=100" example:"Rwandan"`
	Profession  string `json:"profession" validate:"omitempty,max=100" example:"driver"`
}

// VisitInput is the body of POST /visits, as JSON or as multipart form fields
type VisitInput struct {
	Origin      string        `json:"origin" validate:"required,max=200" example:"Huye"`
	VisitReason string        `json:"visitReason" validate:"required,max=1000" example:"family"`
	Duration    string        `json:"duration" validate:"required,max=100" example:"3 days"`
	ArrivalDate string        `json:"arrivalDate" validate:"required,datetime=2006-01-02" example:"2024-05-01"`
	VisitorID   string        `json:"visitorId" validate:"omitempty,uuid" example:"5d0f4c3e-0a4b-4b7e-9c1e-2f9d7c1a0b11"`
	Visitor     *VisitorInput `json:"visitor"`
}

// Check enforces that a visit names its visitor one way or the other
func (in VisitInput) Check() error {
	if in.VisitorID == "" && in.Visitor == nil {
		return perr.WithDetails(
			perr.Validationf("visitorId or visitor is required"),
			perr.FieldError{Field: "visitorId", Message: "visitorId or visitor is required"},
		)
	}
	return nil
}

// Attachment is an optional file sent with a visit
type Attachment struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// DayCount is the number of visits arriving on one day
type DayCount struct {
	Day    time.Time `json:"day"`
	Visits int64     `json:"visits"`
}

// OriginCount is the number of visits from one origin
type OriginCount struct {
	Origin string `json:"origin"`
	Visits int64  `json:"visits"`
}

// StatsQuery bounds a stats request
type StatsQuery struct {
	Days int
	Top  int
}

// Stats summarizes the visits visible to the caller
type Stats struct {
	Since      time.Time     `json:"since"`
	Total      int64         `json:"total"`
	PerDay     []DayCount    `json:"perDay"`
	TopOrigins []OriginCount `json:"topOrigins"`
}
