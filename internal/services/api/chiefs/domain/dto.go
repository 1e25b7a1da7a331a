// Package domain holds DTOs for chief http and service contracts
package domain

// ChiefInput is the body of POST /chiefs, the password is generated and mailed
type ChiefInput struct {
	Firstname   string `json:"firstname" validate:"required,max=100" example:"Eric"`
	Surname     string `json:"surname" validate:"required,max=100" example:"Habimana"`
	Email       string `json:"email" validate:"required,email" example:"eric@example.com"`
	NID         string `json:"NID" validate:"required,nid" example:"1198580012345678"`
	Gender      string `json:"gender" validate:"required,oneof=male female other" example:"male"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone" example:"250788000222"`
	VillageID   string `json:"villageId" validate:"required,uuid" example:"0b7e8c4e-63c5-4b57-9a55-4d2f3c0f9e11"`
	Username    string `json:"username" validate:"required,min=3,max=50" example:"ehabimana"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02" example:"1985-04-12"`
	Nationality string `json:"nationality" validate:"required,max=100" example:"Rwandan"`
	Profession  string `json:"profession" validate:"required,max=100" example:"nurse"`
}
