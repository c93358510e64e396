package catalog

import (
	"github.com/go-faster/errors"

	"github.com/tahaaa22/Fawry--e-commerce-system/internal/pos/domain"
)

// ErrNotFound is returned when a product name is not in the catalog.
var ErrNotFound = errors.New("product not found")

// Catalog is the in-memory product store for one run. Products live for the
// whole run; checkout reduces their stock through the shared pointer.
type Catalog struct {
	byName map[domain.ProductName]*domain.Product
	order  []domain.ProductName
}

func New() *Catalog {
	return &Catalog{byName: make(map[domain.ProductName]*domain.Product)}
}

// Register adds a product under its name. Names are the product identity and
// must be unique within a run.
func (c *Catalog) Register(p *domain.Product) error {
	if _, ok := c.byName[p.Name]; ok {
		return errors.Errorf("duplicate product %s", p.Name)
	}
	c.byName[p.Name] = p
	c.order = append(c.order, p.Name)
	return nil
}

func (c *Catalog) Get(name domain.ProductName) (*domain.Product, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", name)
	}
	return p, nil
}

// List returns the products in registration order.
func (c *Catalog) List() []*domain.Product {
	out := make([]*domain.Product, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}
