package models

import (
	"time"

	"gorm.io/gorm"
)

// Store is a top-level catalog container. Stores are ordered among each other
// by Sort; soft-deleted stores keep their rows but drop out of every query.
type Store struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Sort      uint           `gorm:"not null;default:0" json:"sort"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:StoreID" json:"products,omitempty"`
}

// TableName overrides the table name.
func (Store) TableName() string {
	return "stores"
}

// Product belongs to exactly one store. Sort orders products within their
// store; ImageObject holds the storage key of the uploaded product image.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StoreID     uint           `gorm:"not null;index" json:"store_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Price       uint           `gorm:"not null;default:0" json:"price"`
	Sort        uint           `gorm:"not null;default:0" json:"sort"`
	ImageObject string         `gorm:"size:512" json:"image_object,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// ProductListing is one row of the cross-store product listing: the product
// paired with its owning store.
type ProductListing struct {
	Store   Store   `json:"store"`
	Product Product `json:"product"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ProductPage is the paginated product listing response body.
type ProductPage struct {
	Items      []ProductListing `json:"items"`
	Pagination Pagination       `json:"pagination"`
}
