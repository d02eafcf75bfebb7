package models

import "time"

// Category groups products. Names are unique.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategorySummary is a category with the number of products referencing it.
type CategorySummary struct {
	Category
	ProductCount int64 `json:"product_count"`
}
