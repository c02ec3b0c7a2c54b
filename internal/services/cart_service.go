package services

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"luxio/internal/models"
	"luxio/internal/storage"
)

// CartService maintains the active shopping cart and persists it through the
// storage port after every mutation. Storage failures never propagate to the
// caller: the cart degrades to its in-memory state (or empty, on a failed
// load) rather than surfacing an error, since losing a local cart is
// preferable to blocking the shopper.
type CartService struct {
	store      storage.Store
	storageKey string
	mu         sync.Mutex
}

// NewCartService creates a new CartService persisting under storageKey.
func NewCartService(store storage.Store, storageKey string) *CartService {
	return &CartService{
		store:      store,
		storageKey: storageKey,
	}
}

// Load returns the persisted cart. A missing key, unreadable storage, or
// corrupt payload all yield an empty cart.
func (s *CartService) Load() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads and decodes the cart. Callers must hold s.mu.
func (s *CartService) load() []models.CartItem {
	data, err := s.store.Get(s.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Failed to load cart from storage: %v", err)
		}
		return []models.CartItem{}
	}

	var cart []models.CartItem
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("Discarding corrupt cart state: %v", err)
		return []models.CartItem{}
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	return cart
}

// persist writes the cart back to storage. Failures are logged and swallowed.
// Callers must hold s.mu.
func (s *CartService) persist(cart []models.CartItem) {
	data, err := json.Marshal(cart)
	if err != nil {
		log.Printf("Failed to marshal cart: %v", err)
		return
	}
	if err := s.store.Set(s.storageKey, data); err != nil {
		log.Printf("Failed to save cart to storage: %v", err)
	}
}

// Add puts quantity units of the given product into the cart. If the product
// is already present its quantity is incremented, otherwise a new entry is
// appended. Callers must not pass a quantity below 1. Returns the updated
// cart.
func (s *CartService) Add(productID string, quantity int) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load()
	merged := false
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	s.persist(cart)
	return cart
}

// Remove deletes the entry for the given product. Removing an absent product
// is a no-op. Returns the updated cart.
func (s *CartService) Remove(productID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.removeLocked(productID)
	return cart
}

// removeLocked filters out productID and persists. Callers must hold s.mu.
func (s *CartService) removeLocked(productID string) []models.CartItem {
	cart := s.load()
	updated := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}
	s.persist(updated)
	return updated
}

// SetQuantity sets the entry's quantity to an absolute value. A quantity of
// zero or less removes the entry. Unknown product IDs are a no-op. Returns
// the updated cart.
func (s *CartService) SetQuantity(productID string, quantity int) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(productID)
	}

	cart := s.load()
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			s.persist(cart)
			break
		}
	}
	return cart
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persist([]models.CartItem{})
}

// CartTotal sums price times quantity over the cart against the catalog.
// Entries whose product is missing from the catalog contribute zero.
func CartTotal(cart []models.CartItem, catalog models.Catalog) float64 {
	var total float64
	for _, item := range cart {
		if product, ok := catalog[item.ProductID]; ok {
			total += product.Price * float64(item.Quantity)
		}
	}
	return total
}

// CartItemCount sums the quantities of all entries. A cart with one entry of
// quantity three counts as three items.
func CartItemCount(cart []models.CartItem) int {
	count := 0
	for _, item := range cart {
		count += item.Quantity
	}
	return count
}
