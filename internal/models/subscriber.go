package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscriber is a local mirror of a newsletter signup
type Subscriber struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null" example:"client@example.com"`
	Language string `json:"language" gorm:"size:8" example:"en"`
	// Token is an opaque public identifier
	Token      string     `json:"-" gorm:"uniqueIndex;size:36"`
	Synced     bool       `json:"synced" gorm:"default:false"` // accepted by the CMS
	WelcomedAt *time.Time `json:"welcomed_at,omitempty"`
	SourceIP   string     `json:"-"`
}

// NormalizeEmail lowercases and trims an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate fills the token and normalizes the address
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	s.Email = NormalizeEmail(s.Email)
	if s.Token == "" {
		s.Token = uuid.NewString()
	}
	return nil
}

// All returns every model that takes part in migrations
func All() []any {
	return []any{&Subscriber{}}
}
