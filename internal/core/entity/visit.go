package entity

import "time"

// Visitor is a person who visited a resident, shared across visits
type Visitor struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"column:fullName"                                          json:"fullName"`
	NID         *string   `gorm:"column:NID"                                               json:"NID,omitempty"`
	Email       *string   `gorm:"column:email"                                             json:"email,omitempty"`
	PhoneNumber string    `gorm:"column:phoneNumber"                                       json:"phoneNumber"`
	Gender      string    `gorm:"column:gender"                                            json:"gender"`
	Nationality string    `gorm:"column:nationality"                                       json:"nationality"`
	Profession  *string   `gorm:"column:profession"                                        json:"profession,omitempty"`
	CreatedAt   time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`
}

// TableName implements gorm's Tabler
func (Visitor) TableName() string { return "visitors" }

// Visit records one visitor arriving at one resident's home
type Visit struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ResidentUserID string    `gorm:"column:residentUserId;type:uuid"                          json:"residentUserId"`
	VisitorID      string    `gorm:"column:visitorId;type:uuid"                               json:"visitorId"`
	VillageID      string    `gorm:"column:villageId;type:uuid"                               json:"villageId"`
	Origin         string    `gorm:"column:origin"                                            json:"origin"`
	VisitReason    string    `gorm:"column:visitReason"                                       json:"visitReason"`
	Duration       string    `gorm:"column:duration"                                          json:"duration"`
	ArrivalDate    time.Time `gorm:"column:arrivalDate;type:date"                             json:"arrivalDate"`
	File           *string   `gorm:"column:file"                                              json:"file,omitempty"`
	CreatedAt      time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`

	Visitor  *Visitor      `gorm:"foreignKey:VisitorID"      json:"visitor,omitempty"`
	Resident *ResidentUser `gorm:"foreignKey:ResidentUserID" json:"residentUser,omitempty"`
}

// TableName implements gorm's Tabler
func (Visit) TableName() string { return "visits" }

// Announcement is a notice a chief posts to their village
type Announcement struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"column:userId;type:uuid"                                  json:"userId"`
	VillageID   string    `gorm:"column:villageId;type:uuid"                               json:"villageId"`
	Title       string    `gorm:"column:title"                                             json:"title"`
	Description string    `gorm:"column:description"                                       json:"description"`
	CreatedAt   time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`

	Author *User `gorm:"foreignKey:UserID" json:"createdBy,omitempty"`
}

// TableName implements gorm's Tabler
func (Announcement) TableName() string { return "announcements" }
