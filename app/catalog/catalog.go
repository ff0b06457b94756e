// Package catalog serves the product catalogue.
//
// The catalogue is read-only at runtime: products are seeded into the
// database once (lumina db:seed) and loaded into memory at boot. IDs are
// dense 1..N in insertion order, which the cart's positional quantity
// array depends on.
package catalog

import (
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/pkg/cache"
	"github.com/shashiranjanraj/lumina/pkg/logger"
)

const cacheKey = "catalog:products"

// Service holds the in-memory catalogue.
type Service struct {
	db *gorm.DB

	mu       sync.RWMutex
	products []models.Product
}

// NewService builds a Service over db. Call Load before serving.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// NewStatic builds a Service over a fixed product list with no database.
// Used by tests and by commands that only need route registration.
func NewStatic(products []models.Product) *Service {
	return &Service{products: products}
}

// Load reads the catalogue into memory, preferring the Redis cache and
// falling back to the database. Safe to call again to pick up a reseed.
func (s *Service) Load() error {
	var products []models.Product

	if cache.Get(cacheKey, &products) && len(products) > 0 {
		s.swap(products)
		return nil
	}

	if err := s.db.Order("id asc").Find(&products).Error; err != nil {
		return err
	}

	if err := cache.Set(cacheKey, products, 0); err != nil {
		logger.Warn("catalog: cache write failed", "error", err)
	}

	s.swap(products)
	logger.Info("catalog: loaded", "products", len(products))
	return nil
}

func (s *Service) swap(products []models.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// All returns every product in catalogue order.
func (s *Service) All() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the catalogue size N.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Find returns the product with the given id.
// The second return is false for unknown ids.
func (s *Service) Find(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// IDs are dense 1..N, so the slot lookup is exact.
	if id >= 1 && id <= len(s.products) && int(s.products[id-1].ID) == id {
		return s.products[id-1], true
	}
	for _, p := range s.products {
		if int(p.ID) == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Search returns products whose name or description contains query,
// case-insensitively. An empty query returns the full catalogue.
func (s *Service) Search(query string) []models.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.All()
	}
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
