// Package domain holds DTOs for village http and service contracts
package domain

// VillageInput is the body of both POST and PATCH, a village is always sent whole
type VillageInput struct {
	Province     string `json:"province" validate:"required,max=100" example:"Kigali"`
	District     string `json:"district" validate:"required,max=100" example:"Gasabo"`
	Sector       string `json:"sector" validate:"required,max=100" example:"Kacyiru"`
	Cell         string `json:"cell" validate:"required,max=100" example:"Kamatamu"`
	Village      string `json:"village" validate:"required,max=100" example:"Amahoro"`
	AboutVillage string `json:"aboutVillage" validate:"required,max=2000" example:"Hillside village near the market"`
}

// Deleted acknowledges a removal
type Deleted struct {
	ID string `json:"id"`
}
