package entity

import "time"

// User is the login identity shared by every role
// exactly one of the profile rows exists, matching Role
type User struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Firstname   string    `gorm:"column:firstname"                                         json:"firstname"`
	Surname     string    `gorm:"column:surname"                                           json:"surname"`
	Email       string    `gorm:"column:email"                                             json:"email"`
	NID         string    `gorm:"column:NID"                                               json:"NID"`
	Gender      string    `gorm:"column:gender"                                            json:"gender"`
	PhoneNumber string    `gorm:"column:phoneNumber"                                       json:"phoneNumber"`
	Password    string    `gorm:"column:password"                                          json:"-"`
	Role        string    `gorm:"column:role"                                              json:"role"`
	CreatedAt   time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`

	Admin    *AdminUser    `gorm:"foreignKey:UserID" json:"adminUser,omitempty"`
	Chief    *ChiefUser    `gorm:"foreignKey:UserID" json:"chiefUser,omitempty"`
	Resident *ResidentUser `gorm:"foreignKey:UserID" json:"residentUser,omitempty"`
}

// TableName implements gorm's Tabler
func (User) TableName() string { return "users" }

// AdminUser is the admin profile of a user
type AdminUser struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"column:userId;type:uuid"                                  json:"userId"`
	Position  string    `gorm:"column:position;default:administrator"                    json:"position"`
	CreatedAt time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`
}

// TableName implements gorm's Tabler
func (AdminUser) TableName() string { return "admin_users" }

// ChiefUser is the village chief profile of a user
type ChiefUser struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"column:userId;type:uuid"                                  json:"userId"`
	VillageID   string    `gorm:"column:villageId;type:uuid"                               json:"villageId"`
	Username    string    `gorm:"column:username"                                          json:"username"`
	DateOfBirth time.Time `gorm:"column:dateOfBirth;type:date"                             json:"dateOfBirth"`
	Nationality string    `gorm:"column:nationality"                                       json:"nationality"`
	Profession  string    `gorm:"column:profession"                                        json:"profession"`
	CreatedAt   time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`

	User    *User    `gorm:"foreignKey:UserID"    json:"user,omitempty"`
	Village *Village `gorm:"foreignKey:VillageID" json:"village,omitempty"`
}

// TableName implements gorm's Tabler
func (ChiefUser) TableName() string { return "chief_users" }

// ResidentUser is the resident profile of a user
type ResidentUser struct {
	ID            string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        string    `gorm:"column:userId;type:uuid"                                  json:"userId"`
	VillageID     string    `gorm:"column:villageId;type:uuid"                               json:"villageId"`
	DateOfBirth   time.Time `gorm:"column:dateOfBirth;type:date"                             json:"dateOfBirth"`
	Nationality   string    `gorm:"column:nationality"                                       json:"nationality"`
	Profession    string    `gorm:"column:profession"                                        json:"profession"`
	MaritalStatus string    `gorm:"column:maritalStatus"                                     json:"maritalStatus"`
	CreatedAt     time.Time `gorm:"column:createdAt"                                         json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updatedAt"                                         json:"updatedAt"`

	User    *User    `gorm:"foreignKey:UserID"    json:"user,omitempty"`
	Village *Village `gorm:"foreignKey:VillageID" json:"village,omitempty"`
}

// TableName implements gorm's Tabler
func (ResidentUser) TableName() string { return "resident_users" }
