// Package menu provides the read-only menu catalogue the order pipeline
// consumes. The catalogue loads from YAML; prices are decimal dollars in
// the file and integer cents in memory.
//
// The coordinator never mutates the catalogue. SetPrice exists for the
// staff-facing settings surface, and because orders snapshot prices at
// placement, an edit never reaches an already-placed order.
package menu

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// Catalogue is an in-memory menu keyed by item id.
//
// Thread-safety: all methods are safe for concurrent use.
type Catalogue struct {
	mu    sync.RWMutex
	items map[string]domain.MenuItem
	order []string // listing order, as loaded
}

// itemFile is the YAML shape of one menu entry.
type itemFile struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	PrepMinutes int     `yaml:"prep_minutes"`
}

type menuFile struct {
	Items []itemFile `yaml:"items"`
}

// New builds a catalogue from the given items, keeping their order for
// listings.
func New(items []domain.MenuItem) *Catalogue {
	c := &Catalogue{items: make(map[string]domain.MenuItem, len(items))}
	for _, item := range items {
		if _, dup := c.items[item.ID]; dup {
			continue
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	return c
}

// Load reads a menu YAML file.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalogue from menu YAML.
func Parse(data []byte) (*Catalogue, error) {
	var f menuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("parse menu: no items")
	}
	items := make([]domain.MenuItem, 0, len(f.Items))
	for i, it := range f.Items {
		if it.ID == "" || it.Name == "" {
			return nil, fmt.Errorf("parse menu: item %d missing id or name", i)
		}
		if it.Price <= 0 {
			return nil, fmt.Errorf("parse menu: item %q has non-positive price", it.ID)
		}
		items = append(items, domain.MenuItem{
			ID:          it.ID,
			Name:        it.Name,
			Category:    it.Category,
			Description: it.Description,
			Price:       domain.MoneyFromDollars(it.Price),
			PrepMinutes: it.PrepMinutes,
		})
	}
	return New(items), nil
}

// Default returns the house menu used by the demo and tests.
func Default() *Catalogue {
	return New([]domain.MenuItem{
		{ID: "grilled-chicken", Name: "Grilled Chicken", Category: "Mains", Description: "Tender grilled chicken with herbs", Price: 2599, PrepMinutes: 30},
		{ID: "caesar-salad", Name: "Caesar Salad", Category: "Salads", Description: "Fresh romaine with parmesan", Price: 1299, PrepMinutes: 10},
		{ID: "beef-burger", Name: "Beef Burger", Category: "Mains", Description: "Juicy beef burger with fries", Price: 1899, PrepMinutes: 20},
		{ID: "pasta-carbonara", Name: "Pasta Carbonara", Category: "Pasta", Description: "Creamy pasta with bacon", Price: 2299, PrepMinutes: 25},
		{ID: "chocolate-cake", Name: "Chocolate Cake", Category: "Desserts", Description: "Rich chocolate layer cake", Price: 899, PrepMinutes: 5},
	})
}

// GetMenuItem implements the pipeline's Catalogue interface.
func (c *Catalogue) GetMenuItem(id string) (domain.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Items returns every menu item in listing order.
func (c *Catalogue) Items() []domain.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// SetPrice updates one item's price. Placed orders are unaffected; they
// carry their own snapshots.
func (c *Catalogue) SetPrice(id string, price domain.Money) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return domain.NewUnknownMenuItem(id)
	}
	item.Price = price
	c.items[id] = item
	return nil
}
