package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Laptop is one row of the laptops category table, addressed by its
// auto-incrementing id.
type Laptop struct {
	ID         uint             `gorm:"primaryKey;autoIncrement"`
	Brand      string           `gorm:"type:varchar(64);not null"`
	Model      string           `gorm:"type:varchar(128);not null"`
	Processor  string           `gorm:"type:varchar(128)"`
	RAM        string           `gorm:"type:varchar(32)"`
	Storage    string           `gorm:"type:varchar(64)"`
	ScreenSize string           `gorm:"type:varchar(32)"`
	Graphics   string           `gorm:"type:varchar(128)"`
	Price      decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	PriceMax   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock      int              `gorm:"not null;default:0"`
	Status     string           `gorm:"type:varchar(16);not null;default:'active'"`
	Image1URL  string           `gorm:"type:varchar(512)"`
	Image2URL  string           `gorm:"type:varchar(512)"`
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`
}

func (Laptop) TableName() string {
	return "laptops"
}

// Desktop is one row of the desktops category table.
type Desktop struct {
	ID         uint             `gorm:"primaryKey;autoIncrement"`
	Brand      string           `gorm:"type:varchar(64);not null"`
	Model      string           `gorm:"type:varchar(128);not null"`
	Processor  string           `gorm:"type:varchar(128)"`
	RAM        string           `gorm:"type:varchar(32)"`
	Storage    string           `gorm:"type:varchar(64)"`
	Graphics   string           `gorm:"type:varchar(128)"`
	FormFactor string           `gorm:"type:varchar(64)"`
	Price      decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	PriceMax   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock      int              `gorm:"not null;default:0"`
	Status     string           `gorm:"type:varchar(16);not null;default:'active'"`
	Image1URL  string           `gorm:"type:varchar(512)"`
	Image2URL  string           `gorm:"type:varchar(512)"`
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`
}

func (Desktop) TableName() string {
	return "desktops"
}

// Accessory is one row of the accessories category table.
type Accessory struct {
	ID            uint             `gorm:"primaryKey;autoIncrement"`
	Name          string           `gorm:"type:varchar(128);not null"`
	Brand         string           `gorm:"type:varchar(64)"`
	Kind          string           `gorm:"type:varchar(64)"`
	Compatibility string           `gorm:"type:varchar(128)"`
	Price         decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	PriceMax      *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock         int              `gorm:"not null;default:0"`
	Status        string           `gorm:"type:varchar(16);not null;default:'active'"`
	Image1URL     string           `gorm:"type:varchar(512)"`
	Image2URL     string           `gorm:"type:varchar(512)"`
	CreatedAt     time.Time        `gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime"`
}

func (Accessory) TableName() string {
	return "accessories"
}
