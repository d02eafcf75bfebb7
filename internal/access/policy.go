// Package access decides who may read and change catalog records.
package access

import (
	"inventory/internal/config"
	"inventory/internal/models"
	pkgerrors "inventory/pkg/errors"
)

// Actor is the authenticated caller of a catalog operation.
type Actor struct {
	UserID   string
	Username string
	Role     models.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Policy applies one of the configured access modes.
type Policy struct {
	Mode string
}

// NewPolicy returns a policy for mode; unknown modes fall back to global.
func NewPolicy(mode string) Policy {
	if mode != config.AccessOwner {
		mode = config.AccessGlobal
	}
	return Policy{Mode: mode}
}

// Owner reports whether records are private to the user who created them.
func (p Policy) Owner() bool {
	return p.Mode == config.AccessOwner
}

// ReadScope returns the owner ID that product reads, stats and exports are
// restricted to. An empty result means the whole catalog.
func (p Policy) ReadScope(actor Actor) string {
	if p.Owner() {
		return actor.UserID
	}
	return ""
}

// RequireProductWriter checks that the actor may add, change or delete
// products at all. Ownership of a specific product is checked separately.
func (p Policy) RequireProductWriter(actor Actor) error {
	if p.Owner() || actor.IsAdmin() {
		return nil
	}
	return pkgerrors.Forbidden("only administrators can modify products")
}

// AuthorizeProductRead hides products of other users in owner mode.
func (p Policy) AuthorizeProductRead(actor Actor, product *models.Product) error {
	if p.Owner() && product.CreatedBy != actor.UserID {
		return pkgerrors.NotFound("product with ID %d not found", product.ID)
	}
	return nil
}

// AuthorizeProductWrite checks that the actor may change or delete product.
func (p Policy) AuthorizeProductWrite(actor Actor, product *models.Product) error {
	if p.Owner() {
		return p.AuthorizeProductRead(actor, product)
	}
	if actor.IsAdmin() {
		return nil
	}
	return pkgerrors.Forbidden("only administrators can modify products")
}

// AuthorizeCategoryWrite checks that the actor may change categories.
func (p Policy) AuthorizeCategoryWrite(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return pkgerrors.Forbidden("only administrators can modify categories")
}
