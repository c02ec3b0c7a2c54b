package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"luxio/internal/models"
	"luxio/internal/storage"
)

// EventPublisher publishes storefront events to the message broker. It is
// implemented by rabbitmq.Client; services tolerate a nil publisher and only
// log where a publish would have happened.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
	PublishPaymentResult(paymentData map[string]interface{}) error
}

// OrderService owns the order ledger: the newest-first list of every order
// ever placed, persisted through the storage port. Ledger records are
// append-only; after creation only the status field ever changes.
type OrderService struct {
	store      storage.Store
	storageKey string
	publisher  EventPublisher
	mu         sync.Mutex
}

// NewOrderService creates a new OrderService persisting under storageKey.
// publisher may be nil, in which case order events are not published.
func NewOrderService(store storage.Store, storageKey string, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:      store,
		storageKey: storageKey,
		publisher:  publisher,
	}
}

// GenerateOrderID produces an order identifier from the current timestamp
// plus a random suffix, e.g. "LXO-1756358400123-417". Uniqueness is
// probabilistic, which is acceptable at this system's order volume.
func GenerateOrderID() string {
	return fmt.Sprintf("LXO-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// load reads and decodes the ledger. Missing or corrupt state yields an
// empty ledger. Callers must hold s.mu.
func (s *OrderService) load() []models.Order {
	data, err := s.store.Get(s.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Failed to load orders from storage: %v", err)
		}
		return []models.Order{}
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("Discarding corrupt order ledger: %v", err)
		return []models.Order{}
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders
}

// persist writes the ledger back to storage. Failures are logged and
// swallowed. Callers must hold s.mu.
func (s *OrderService) persist(orders []models.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		log.Printf("Failed to marshal order ledger: %v", err)
		return
	}
	if err := s.store.Set(s.storageKey, data); err != nil {
		log.Printf("Failed to save orders to storage: %v", err)
	}
}

// CreateOrder builds an order from the given cart entries, snapshotting each
// item's name and price from the catalog at this moment. Entries whose
// product is missing from the catalog get a placeholder name and zero price
// instead of failing the whole order. The total is computed from the
// snapshots, never taken from the caller. The new order is prepended to the
// ledger so retrieval is newest-first.
func (s *OrderService) CreateOrder(cartItems []models.CartItem, catalog models.Catalog, customerInfo models.CustomerInfo, paymentMethod string) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.OrderItem, 0, len(cartItems))
	var total float64
	for _, entry := range cartItems {
		name := "Unknown Product"
		var price float64
		if product, ok := catalog[entry.ProductID]; ok {
			name = product.Name
			price = product.Price
		}
		items = append(items, models.OrderItem{
			ProductID: entry.ProductID,
			Name:      name,
			Quantity:  entry.Quantity,
			Price:     price,
		})
		total += price * float64(entry.Quantity)
	}

	order := models.Order{
		ID:            GenerateOrderID(),
		CreatedAt:     time.Now(),
		Items:         items,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
		CustomerInfo:  customerInfo,
	}

	orders := append([]models.Order{order}, s.load()...)
	s.persist(orders)

	// Publish an order.created event. A publish failure must not fail the
	// order, the record is already in the ledger.
	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID": order.ID,
			"email":   order.CustomerInfo.Email,
			"status":  order.Status,
			"total":   order.Total,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		}
	} else {
		log.Println("Event publisher is not configured. Skipping order created event.")
	}

	return &order
}

// UpdateStatus overwrites the status of the order with the given ID and
// persists the ledger. The write is unconditional: no transition rules are
// enforced here, external payment confirmations are trusted as
// authoritative. It reports whether an order with that ID existed; an
// unknown ID leaves the ledger untouched.
func (s *OrderService) UpdateStatus(orderID string, status models.OrderStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
			s.persist(orders)
			return true
		}
	}
	return false
}

// GetOrder returns the order with the given ID, if present.
func (s *OrderService) GetOrder(orderID string) (*models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.load() {
		if order.ID == orderID {
			return &order, true
		}
	}
	return nil, false
}

// AllOrders returns the full ledger, newest first.
func (s *OrderService) AllOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// OrdersForCustomer returns the orders whose customer email matches,
// preserving ledger order.
func (s *OrderService) OrdersForCustomer(email string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.Order, 0)
	for _, order := range s.load() {
		if order.CustomerInfo.Email == email {
			matched = append(matched, order)
		}
	}
	return matched
}
