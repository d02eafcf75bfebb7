package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry owned by the user who created it.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(200);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null;default:0"`
	CategoryID    *uint           `json:"category" gorm:"index"`
	Category      *Category       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	Status        ProductStatus   `json:"status" gorm:"type:varchar(20);not null;index"`
	Image         string          `json:"image" gorm:"type:varchar(255)"`
	Rating        decimal.Decimal `json:"rating" gorm:"type:numeric(3,1);not null;default:0"`
	CreatedBy     string          `json:"created_by" gorm:"type:varchar(36);not null;index"`
	Creator       *User           `json:"-" gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE;"`
	IsActive      bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Normalize recomputes derived fields. Any status set by the caller is overwritten.
func (p *Product) Normalize() {
	p.Status = DeriveStatus(p.StockQuantity)
}

// BeforeSave runs for both Create and Save, so every write path derives the status.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

// CategoryName returns the category name or "" when unassigned or not loaded.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CreatorName returns the owner's username when the owner is loaded.
func (p *Product) CreatorName() string {
	if p.Creator == nil {
		return ""
	}
	return p.Creator.Username
}

// ProductStats aggregates the catalog for the dashboard.
type ProductStats struct {
	TotalProducts int64           `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	InStock       int64           `json:"in_stock"`
	LowStock      int64           `json:"low_stock"`
	OutOfStock    int64           `json:"out_of_stock"`
}
