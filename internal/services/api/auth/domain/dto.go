// Package domain holds DTOs for auth http and service contracts
package domain

import "villagevisits/internal/core/entity"

// AdminSignupInput is the body of POST /admin/signup
type AdminSignupInput struct {
	Firstname   string `json:"firstname" validate:"required,max=100" example:"Aline"`
	Surname     string `json:"surname" validate:"required,max=100" example:"Uwase"`
	Email       string `json:"email" validate:"required,email" example:"aline@example.com"`
	NID         string `json:"NID" validate:"required,nid" example:"1199080012345678"`
	Gender      string `json:"gender" validate:"required,oneof=male female other" example:"female"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone" example:"250788000111"`
	Password    string `json:"password" validate:"required,password" example:"Secret123"`
	Position    string `json:"position" validate:"required,max=100" example:"district officer"`
}

// LoginInput is the body of both login routes
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" example:"aline@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123"`
}

// Session is a logged in user and their bearer token
type Session struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// AdminSession is the signup answer
type AdminSession struct {
	AdminUser *entity.User `json:"adminUser"`
	Token     string       `json:"token"`
}

// Message is a plain acknowledgement
type Message struct {
	Message string `json:"message"`
}

// NewAccount is the identity half of any registration
// Password is plain text, it is hashed before it reaches the store
type NewAccount struct {
	Firstname   string
	Surname     string
	Email       string
	NID         string
	Gender      string
	PhoneNumber string
	Role        string
	Password    string
}
