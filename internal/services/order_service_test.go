package services_test

import (
	"regexp"
	"strings"
	"testing"

	"luxio/internal/models"
	"luxio/internal/services"
	"luxio/internal/storage"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(orderData map[string]interface{}) error {
	args := m.Called(orderData)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentResult(paymentData map[string]interface{}) error {
	args := m.Called(paymentData)
	return args.Error(0)
}

func fakeCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Address:   gofakeit.Street(),
		City:      gofakeit.City(),
		Country:   gofakeit.Country(),
		Phone:     gofakeit.Phone(),
	}
}

func testCatalog() models.Catalog {
	return models.Catalog{
		"prod-a": {ID: "prod-a", Name: "Product A", Price: 10.0},
		"prod-b": {ID: "prod-b", Name: "Product B", Price: 20.0},
	}
}

func TestGenerateOrderID_Format(t *testing.T) {
	id := services.GenerateOrderID()
	assert.Regexp(t, regexp.MustCompile(`^LXO-\d+-\d{1,3}$`), id)
}

func TestOrderService_CreateOrder(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)
	customer := fakeCustomer()

	cart := []models.CartItem{
		{ProductID: "prod-a", Quantity: 2},
		{ProductID: "prod-b", Quantity: 1},
	}
	order := orderService.CreateOrder(cart, testCatalog(), customer, "nowpayments")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, customer, order.CustomerInfo)
	assert.Equal(t, "nowpayments", order.PaymentMethod)
	assert.Equal(t, 40.0, order.Total)
	assert.Equal(t, []models.OrderItem{
		{ProductID: "prod-a", Name: "Product A", Quantity: 2, Price: 10.0},
		{ProductID: "prod-b", Name: "Product B", Quantity: 1, Price: 20.0},
	}, order.Items)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestOrderService_CreateOrderMissingProductDegrades(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)

	cart := []models.CartItem{
		{ProductID: "prod-a", Quantity: 1},
		{ProductID: "prod-gone", Quantity: 3},
	}
	order := orderService.CreateOrder(cart, testCatalog(), fakeCustomer(), "")

	// A deleted catalog entry must not fail the order; it becomes a
	// placeholder item at zero price and contributes nothing to the total.
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Unknown Product", order.Items[1].Name)
	assert.Equal(t, 0.0, order.Items[1].Price)
	assert.Equal(t, 10.0, order.Total)
}

func TestOrderService_SnapshotsSurviveCatalogChanges(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)

	catalog := testCatalog()
	cart := []models.CartItem{{ProductID: "prod-a", Quantity: 2}}
	order := orderService.CreateOrder(cart, catalog, fakeCustomer(), "")

	// Reprice the product after the order was placed.
	repriced := catalog["prod-a"]
	repriced.Price = 999.0
	repriced.Name = "Renamed"
	catalog["prod-a"] = repriced

	stored, found := orderService.GetOrder(order.ID)
	assert.True(t, found)
	assert.Equal(t, "Product A", stored.Items[0].Name)
	assert.Equal(t, 10.0, stored.Items[0].Price)
	assert.Equal(t, 20.0, stored.Total)
}

func TestOrderService_LedgerIsNewestFirst(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)
	customer := fakeCustomer()

	first := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), customer, "")
	second := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-b", Quantity: 1}}, testCatalog(), customer, "")

	orders := orderService.AllOrders()
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)

	order := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), fakeCustomer(), "")

	found := orderService.UpdateStatus(order.ID, models.OrderStatusPaid)
	assert.True(t, found)

	stored, _ := orderService.GetOrder(order.ID)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
}

func TestOrderService_UpdateStatusUnknownIDIsNoOp(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)

	order := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), fakeCustomer(), "")

	found := orderService.UpdateStatus("nonexistent", models.OrderStatusPaid)
	assert.False(t, found)

	// The ledger is unchanged.
	orders := orderService.AllOrders()
	assert.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestOrderService_OrdersForCustomer(t *testing.T) {
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", nil)

	alice := fakeCustomer()
	bob := fakeCustomer()

	orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), alice, "")
	orderService.CreateOrder([]models.CartItem{{ProductID: "prod-b", Quantity: 1}}, testCatalog(), bob, "")
	second := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-b", Quantity: 2}}, testCatalog(), alice, "")

	orders := orderService.OrdersForCustomer(alice.Email)
	assert.Len(t, orders, 2)
	// Ledger order is preserved: newest first.
	assert.Equal(t, second.ID, orders[0].ID)

	assert.Empty(t, orderService.OrdersForCustomer("nobody@example.com"))
}

func TestOrderService_PersistsAcrossInstances(t *testing.T) {
	store := storage.NewMemoryStore()
	first := services.NewOrderService(store, "luxio-orders", nil)

	order := first.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 2}}, testCatalog(), fakeCustomer(), "maxelpay")

	second := services.NewOrderService(store, "luxio-orders", nil)
	orders := second.AllOrders()
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, order.Items, orders[0].Items)
	assert.Equal(t, order.Total, orders[0].Total)
	assert.Equal(t, order.CustomerInfo, orders[0].CustomerInfo)
}

func TestOrderService_CorruptLedgerYieldsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	err := store.Set("luxio-orders", []byte("[{broken"))
	assert.NoError(t, err)

	orderService := services.NewOrderService(store, "luxio-orders", nil)
	assert.Empty(t, orderService.AllOrders())
}

func TestOrderService_PublishesOrderCreatedEvent(t *testing.T) {
	mockPublisher := new(MockEventPublisher)
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", mockPublisher)
	customer := fakeCustomer()

	// The event carries the fields the order-event consumer decodes.
	mockPublisher.On("PublishOrderCreated", mock.MatchedBy(func(event map[string]interface{}) bool {
		orderID, _ := event["orderID"].(string)
		return strings.HasPrefix(orderID, "LXO-") &&
			event["email"] == customer.Email &&
			event["total"] == 10.0
	})).Return(nil).Once()

	orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), customer, "")
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_PublishFailureDoesNotFailOrder(t *testing.T) {
	mockPublisher := new(MockEventPublisher)
	orderService := services.NewOrderService(storage.NewMemoryStore(), "luxio-orders", mockPublisher)

	mockPublisher.On("PublishOrderCreated", mock.Anything).Return(assert.AnError).Once()

	order := orderService.CreateOrder([]models.CartItem{{ProductID: "prod-a", Quantity: 1}}, testCatalog(), fakeCustomer(), "")

	// The order is in the ledger even though the event publish failed.
	assert.NotNil(t, order)
	assert.Len(t, orderService.AllOrders(), 1)
	mockPublisher.AssertExpectations(t)
}
