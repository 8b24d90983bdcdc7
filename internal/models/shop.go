package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is an installed Shopify store and the access token obtained for it
// through the OAuth flow.
type Shop struct {
	ID          string     `json:"id" gorm:"primary_key"`
	ShopDomain  string     `json:"shop_domain" gorm:"unique;not null"`
	AccessToken string     `json:"-" gorm:"not null"`
	Scope       string     `json:"scope"`
	Status      ShopStatus `json:"status" gorm:"default:ACTIVE"`
	InstalledAt time.Time  `json:"installed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ShopStatus string

const (
	ShopStatusActive      ShopStatus = "ACTIVE"
	ShopStatusUninstalled ShopStatus = "UNINSTALLED"
)

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
