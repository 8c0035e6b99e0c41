package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/storefront-qa/pageflow/internal/models"
)

// ErrUnknownProduct is returned when a product is not in the catalogue
var ErrUnknownProduct = errors.New("product is not in the catalogue")

// DefaultCountries is the typeahead's country list
func DefaultCountries() []string {
	return []string{
		"Argentina", "Australia", "Brazil", "British Indian Ocean Territory",
		"Canada", "Chile", "France", "Germany", "India", "Indonesia",
		"Ireland", "Italy", "Japan", "Mexico", "Spain", "United Kingdom",
		"United States",
	}
}

// CartService holds the catalogue, the country list and one cart per shopper
type CartService struct {
	mu        sync.Mutex
	products  []models.Product
	countries []string
	carts     map[string][]string
}

// NewCartService creates a cart service over a catalogue and a country list
func NewCartService(products []models.Product, countries []string) *CartService {
	sorted := append([]string(nil), countries...)
	sort.Strings(sorted)
	return &CartService{
		products:  append([]models.Product(nil), products...),
		countries: sorted,
		carts:     map[string][]string{},
	}
}

// Catalogue returns every product on sale
func (s *CartService) Catalogue() []models.Product {
	return append([]models.Product(nil), s.products...)
}

// Add puts a catalogue product in the shopper's cart
func (s *CartService) Add(email, product string) error {
	if !s.onSale(product) {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, product)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[email] = append(s.carts[email], product)
	return nil
}

// Items returns the cart in the order products were added
func (s *CartService) Items(email string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.carts[email]...)
}

// Clear empties a cart
func (s *CartService) Clear(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, email)
}

// Countries returns the countries containing query, case-insensitively,
// in alphabetical order. An empty query matches nothing.
func (s *CartService) Countries(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []string
	for _, c := range s.countries {
		if strings.Contains(strings.ToLower(c), query) {
			out = append(out, c)
		}
	}
	return out
}

// IsCountry reports whether name is one of the offered countries
func (s *CartService) IsCountry(name string) bool {
	for _, c := range s.countries {
		if c == name {
			return true
		}
	}
	return false
}

func (s *CartService) onSale(name string) bool {
	for _, p := range s.products {
		if p.Name == name {
			return true
		}
	}
	return false
}
