package services

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// PaymentProvider describes one payment method offered at checkout.
type PaymentProvider struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`   // "crypto", "fiat" or "mixed"
	Status      string `json:"status"` // "active" or "coming_soon"
}

// PaymentResult is the simulated gateway outcome for one payment attempt.
type PaymentResult struct {
	OrderID   string `json:"orderID"`
	Provider  string `json:"provider"`
	Succeeded bool   `json:"succeeded"`
}

// PaymentService simulates the hosted payment gateways of the storefront.
// It never touches the order ledger: each outcome is published as a payment
// event and the broker consumer applies the status transition, the same path
// a real gateway callback would take.
type PaymentService struct {
	providers []PaymentProvider
	publisher EventPublisher
	rng       *rand.Rand
}

// NewPaymentService creates a PaymentService with the storefront's provider
// registry. rng drives the simulated outcomes; pass nil for a time-seeded
// source.
func NewPaymentService(publisher EventPublisher, rng *rand.Rand) *PaymentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PaymentService{
		providers: []PaymentProvider{
			{ID: "nowpayments", Name: "NOWPayments", Description: "Cryptomonnaies acceptées", Type: "crypto", Status: "active"},
			{ID: "maxelpay", Name: "MaxelPay", Description: "Cartes bancaires & virements", Type: "fiat", Status: "active"},
			{ID: "transak", Name: "Transak", Description: "Fiat vers crypto", Type: "mixed", Status: "coming_soon"},
			{ID: "guardarian", Name: "Guardarian", Description: "Fiat + Crypto widget", Type: "mixed", Status: "coming_soon"},
		},
		publisher: publisher,
		rng:       rng,
	}
}

// Providers returns the provider registry in display order.
func (s *PaymentService) Providers() []PaymentProvider {
	out := make([]PaymentProvider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Provider returns the provider with the given ID, if registered.
func (s *PaymentService) Provider(id string) (*PaymentProvider, bool) {
	for _, p := range s.providers {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

// Process runs a simulated payment for an order through the named provider.
// The stand-in gateway approves roughly 4 out of 5 attempts. The outcome is
// published as a payment event; the order itself is not mutated here.
func (s *PaymentService) Process(orderID, providerID string, amount float64) (*PaymentResult, error) {
	provider, ok := s.Provider(providerID)
	if !ok {
		return nil, fmt.Errorf("unknown payment provider: %s", providerID)
	}
	if provider.Status != "active" {
		return nil, fmt.Errorf("payment provider %s is not yet available", provider.Name)
	}

	// Simulated gateway outcome, 80/20. A real integration would redirect to
	// the provider's hosted page and receive the outcome on a callback.
	result := &PaymentResult{
		OrderID:   orderID,
		Provider:  provider.ID,
		Succeeded: s.rng.Float64() > 0.2,
	}
	log.Printf("Simulated %s payment of %.2f for order %s: succeeded=%t", provider.Name, amount, orderID, result.Succeeded)

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID":   result.OrderID,
			"provider":  result.Provider,
			"succeeded": result.Succeeded,
			"amount":    amount,
		}
		if err := s.publisher.PublishPaymentResult(event); err != nil {
			return nil, fmt.Errorf("failed to publish payment result for order %s: %w", orderID, err)
		}
	} else {
		log.Println("Event publisher is not configured. Skipping payment result event.")
	}

	return result, nil
}
