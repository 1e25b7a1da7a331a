// Package domain holds DTOs for resident http and service contracts
package domain

// ResidentInput is the body of POST /residents/register
// the village is the registering chief's, never taken from the body
type ResidentInput struct {
	Firstname     string `json:"firstname" validate:"required,max=100" example:"Claudine"`
	Surname       string `json:"surname" validate:"required,max=100" example:"Mukamana"`
	Email         string `json:"email" validate:"required,email" example:"claudine@example.com"`
	NID           string `json:"NID" validate:"required,nid" example:"1199280012345678"`
	Gender        string `json:"gender" validate:"required,oneof=male female other" example:"female"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone" example:"250788000333"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required,datetime=2006-01-02" example:"1992-08-30"`
	Nationality   string `json:"nationality" validate:"required,max=100" example:"Rwandan"`
	Profession    string `json:"profession" validate:"required,max=100" example:"farmer"`
	MaritalStatus string `json:"maritalStatus" validate:"required,oneof=married divorced single widowed" example:"single"`
}
