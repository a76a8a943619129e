// Package shop manages the reward shop catalog and purchases against the ledger.
package shop

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/resolution/internal/ledger"
	"github.com/theirongolddev/resolution/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type itemInput struct {
	Name string `validate:"required,max=120"`
	Cost int    `validate:"gte=0"`
}

// Patch lists the fields of an item to change. Nil fields are kept.
type Patch struct {
	Name *string
	Cost *int
}

// Catalog is the ordered list of shop items plus the id counter.
type Catalog struct {
	items  []model.ShopItem
	nextID int
}

// New builds a catalog. nextID is raised past every existing id so ids are
// never reused, even when the counter was lost.
func New(items []model.ShopItem, nextID int) *Catalog {
	c := &Catalog{
		items:  append([]model.ShopItem(nil), items...),
		nextID: max(nextID, 1),
	}
	for _, it := range c.items {
		if it.ID >= c.nextID {
			c.nextID = it.ID + 1
		}
	}
	return c
}

// Items returns the items in insertion order.
func (c *Catalog) Items() []model.ShopItem {
	return append([]model.ShopItem(nil), c.items...)
}

// NextID is the id the next added item will get.
func (c *Catalog) NextID() int {
	return c.nextID
}

// Get returns the item with id.
func (c *Catalog) Get(id int) (model.ShopItem, error) {
	i := c.find(id)
	if i < 0 {
		return model.ShopItem{}, fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	return c.items[i], nil
}

func (c *Catalog) find(id int) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func validateItem(name string, cost int) error {
	if err := validate.Struct(itemInput{Name: name, Cost: cost}); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}

// Add appends a new unpurchased item.
func (c *Catalog) Add(name string, cost int) (model.ShopItem, error) {
	name = strings.TrimSpace(name)
	if err := validateItem(name, cost); err != nil {
		return model.ShopItem{}, err
	}

	item := model.ShopItem{ID: c.nextID, Name: name, Cost: cost}
	c.nextID++
	c.items = append(c.items, item)
	return item, nil
}

// Update changes the provided fields of item id.
func (c *Catalog) Update(id int, p Patch) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}

	updated := c.items[i]
	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if p.Cost != nil {
		updated.Cost = *p.Cost
	}
	if err := validateItem(updated.Name, updated.Cost); err != nil {
		return err
	}
	c.items[i] = updated
	return nil
}

// Delete removes item id.
func (c *Catalog) Delete(id int) error {
	i := c.find(id)
	if i < 0 {
		return fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Purchase buys item id with coins from l. The item is marked purchased
// only after the withdrawal succeeds, so the balance is debited exactly
// when the item flips to purchased.
func (c *Catalog) Purchase(id int, l *ledger.Ledger) (string, error) {
	i := c.find(id)
	if i < 0 {
		return "", fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	item := &c.items[i]
	if item.Purchased {
		return "", fmt.Errorf("%s: %w", item.Name, model.ErrAlreadyPurchased)
	}
	if err := l.Withdraw(item.Cost); err != nil {
		return "", fmt.Errorf("buying %s: %w", item.Name, err)
	}
	item.Purchased = true
	return fmt.Sprintf("Purchased %s!", item.Name), nil
}

// Affordable lists unpurchased items costing at most balance.
func (c *Catalog) Affordable(balance int) []model.ShopItem {
	var out []model.ShopItem
	for _, it := range c.items {
		if !it.Purchased && it.Cost <= balance {
			out = append(out, it)
		}
	}
	return out
}

// Seed is a starter item for an empty shop.
type Seed struct {
	Name string
	Cost int
}

// DefaultItems seeds an empty shop.
func DefaultItems() []Seed {
	return []Seed{
		{"Coffee treat", 50},
		{"Nice lunch out", 150},
		{"New book", 300},
		{"Video game", 600},
		{"Weekend trip", 2000},
		{"New laptop", 10000},
	}
}
