package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User role constants
const (
	RoleAdmin  = "admin"
	RoleAgent  = "agent"
	RoleClient = "client"
)

type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"not null;default:agent" json:"role"` // admin, agent, client
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsStaff reports whether the user can see cases beyond their own
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAgent
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
