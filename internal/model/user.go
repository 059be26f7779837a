package model

// User represents an account on the dashboard. Password material is stored
// only as a bcrypt hash and is never serialized.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
