package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

type cart struct {
	items     []models.CartItem
	updatedAt time.Time
}

// CartStore holds one in-memory cart per session key (user or guest id).
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*cart
	now   func() time.Time
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*cart),
		now:   time.Now,
	}
}

// Snapshot returns a copy of the session's cart lines.
func (s *CartStore) Snapshot(key string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[key]
	if !ok {
		return []models.CartItem{}
	}
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// AddOrIncrement bumps the quantity of an existing line or appends a new one.
// Services are rejected; they cannot be shipped.
func (s *CartStore) AddOrIncrement(key string, product models.Product) ([]models.CartItem, error) {
	if product.ProductType != models.ProductTypeProduct {
		return nil, fmt.Errorf("%w: product %d is not cartable", models.ErrNotFound, product.ID)
	}

	s.mu.Lock()
	now := s.now()
	c, ok := s.carts[key]
	if !ok {
		c = &cart{}
		s.carts[key] = c
	}
	c.updatedAt = now

	if i := indexOf(c.items, product.ID); i >= 0 {
		c.items[i].Quantity++
		c.items[i].Product.Price = product.Prices.Effective()
		c.items[i].Recalculate()
	} else {
		c.items = append(c.items, models.NewCartItem(product, now))
	}
	s.mu.Unlock()

	return s.Snapshot(key), nil
}

// DecrementOrRemove lowers the quantity by one and drops the line at zero.
func (s *CartStore) DecrementOrRemove(key string, productID uint) ([]models.CartItem, error) {
	s.mu.Lock()
	c, ok := s.carts[key]
	i := -1
	if ok {
		i = indexOf(c.items, productID)
	}
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: product %d not in cart", models.ErrNotFound, productID)
	}

	c.updatedAt = s.now()
	c.items[i].Quantity--
	if c.items[i].Quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	} else {
		c.items[i].Recalculate()
	}
	if len(c.items) == 0 {
		delete(s.carts, key)
	}
	s.mu.Unlock()

	return s.Snapshot(key), nil
}

// Clear destroys the session cart, typically after checkout.
func (s *CartStore) Clear(key string) {
	s.mu.Lock()
	delete(s.carts, key)
	s.mu.Unlock()
}

// Sweep drops carts idle for longer than idle and returns how many were removed.
func (s *CartStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for key, c := range s.carts {
		if c.updatedAt.Before(cutoff) {
			delete(s.carts, key)
			removed++
		}
	}
	return removed
}

func indexOf(items []models.CartItem, productID uint) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}
