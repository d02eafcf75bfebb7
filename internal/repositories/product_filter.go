package repositories

import (
	"strconv"
	"strings"

	"inventory/internal/models"

	"gorm.io/gorm"
)

// ProductFilter narrows the product collection. Zero values impose no constraint.
type ProductFilter struct {
	// OwnerID restricts the base collection to one user's products.
	OwnerID    string
	Search     string
	CategoryID *uint
	Status     models.ProductStatus
	// Invalid marks a filter built from malformed input; it matches nothing.
	Invalid bool
}

// NewProductFilter builds a filter from raw query values. Malformed category or
// status values produce a filter that matches no rows instead of an error.
func NewProductFilter(search, category, status string) ProductFilter {
	filter := ProductFilter{Search: strings.TrimSpace(search)}

	if raw := strings.TrimSpace(category); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			filter.Invalid = true
		} else {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}

	if raw := strings.TrimSpace(status); raw != "" {
		parsed, err := models.ParseProductStatus(raw)
		if err != nil {
			filter.Invalid = true
		} else {
			filter.Status = parsed
		}
	}

	return filter
}

// ScopedTo returns a copy of f restricted to ownerID ("" keeps it global).
func (f ProductFilter) ScopedTo(ownerID string) ProductFilter {
	f.OwnerID = ownerID
	return f
}

// Scope applies the filter as a gorm scope.
func (f ProductFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Invalid {
		return db.Where("1 = 0")
	}
	if f.OwnerID != "" {
		db = db.Where("products.created_by = ?", f.OwnerID)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		db = searchScope(db, term)
	}
	if f.CategoryID != nil {
		db = db.Where("products.category_id = ?", *f.CategoryID)
	}
	if f.Status != "" {
		db = db.Where("products.status = ?", f.Status)
	}
	return db
}

// searchScope matches term case-insensitively in name or description.
// PostgreSQL folds any letter with ILIKE; SQLite's LOWER folds ASCII only, so
// non-ASCII searches there are case-sensitive.
func searchScope(db *gorm.DB, term string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		pattern := "%" + escapeLike(term) + "%"
		return db.Where(
			`(products.name ILIKE ? ESCAPE '\' OR products.description ILIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return db.Where(
		`(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\')`,
		pattern, pattern,
	)
}

// newestFirst is the deterministic product ordering.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("products.created_at DESC").Order("products.id DESC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
