package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekeep/tablekeep/internal/domain"
)

func TestParse(t *testing.T) {
	data := []byte(`
items:
  - id: soup-of-the-day
    name: Soup of the Day
    category: Starters
    price: 7.50
    prep_minutes: 8
  - id: ribeye
    name: Ribeye Steak
    category: Mains
    description: 12oz, dry-aged
    price: 42.00
    prep_minutes: 35
`)
	c, err := Parse(data)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "soup-of-the-day", items[0].ID)
	assert.Equal(t, domain.Money(750), items[0].Price)
	assert.Equal(t, 8, items[0].PrepMinutes)
	assert.Equal(t, "Ribeye Steak", items[1].Name)
	assert.Equal(t, domain.Money(4200), items[1].Price)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "items: []"},
		{"missing id", "items:\n  - name: Nameless\n    price: 5.00"},
		{"missing name", "items:\n  - id: ghost\n    price: 5.00"},
		{"zero price", "items:\n  - id: freebie\n    name: Freebie\n    price: 0"},
		{"bad yaml", "items: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	items := c.Items()
	require.Len(t, items, 5)
	assert.Equal(t, "grilled-chicken", items[0].ID)

	item, ok := c.GetMenuItem("pasta-carbonara")
	require.True(t, ok)
	assert.Equal(t, "Pasta Carbonara", item.Name)
	assert.Equal(t, domain.Money(2299), item.Price)
	assert.Equal(t, 25, item.PrepMinutes)

	_, ok = c.GetMenuItem("off-menu")
	assert.False(t, ok)
}

func TestNew_SkipsDuplicateIDs(t *testing.T) {
	c := New([]domain.MenuItem{
		{ID: "a", Name: "First", Price: 100},
		{ID: "a", Name: "Shadowed", Price: 200},
	})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Name)
}

func TestSetPrice(t *testing.T) {
	c := Default()

	require.NoError(t, c.SetPrice("caesar-salad", domain.Money(1399)))
	item, _ := c.GetMenuItem("caesar-salad")
	assert.Equal(t, domain.Money(1399), item.Price)

	err := c.SetPrice("off-menu", domain.Money(100))
	require.Error(t, err)
	assert.Equal(t, domain.CodeUnknownMenuItem, domain.CodeOf(err))
}
