package models

import "fmt"

// ProductStatus is derived from stock quantity on every save.
type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusLowStock   ProductStatus = "low_stock"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 10

var statusLabels = map[ProductStatus]string{
	StatusInStock:    "In Stock",
	StatusLowStock:   "Low Stock",
	StatusOutOfStock: "Out of Stock",
}

// DeriveStatus maps a stock quantity to its status.
func DeriveStatus(quantity int) ProductStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (s ProductStatus) String() string {
	return string(s)
}

// Label returns the human-readable status.
func (s ProductStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether s is a known status.
func (s ProductStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	status := ProductStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid product status %q", value)
	}
	return status, nil
}
