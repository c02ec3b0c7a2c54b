package handlers

import (
	"fmt"
	"log"
	"strings"

	"luxio/internal/models"
	"luxio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for the simulated payment providers.
type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Get("/providers", h.HandleGetProviders)
	paymentRoutes.Post("/process", h.HandleProcessPayment)
}

// HandleGetProviders lists the payment providers and their availability.
func (h *PaymentHandler) HandleGetProviders(c *fiber.Ctx) error {
	return c.JSON(h.paymentService.Providers())
}

// ProcessPaymentRequest represents the request body for running a payment.
type ProcessPaymentRequest struct {
	OrderID  string `json:"orderId"`
	Provider string `json:"provider"`
}

// HandleProcessPayment runs a simulated payment for a pending order. The
// response reports the gateway outcome; the order's status changes
// asynchronously once the payment event is consumed.
func (h *PaymentHandler) HandleProcessPayment(c *fiber.Ctx) error {
	var req ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.OrderID == "" || req.Provider == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID and provider are required.",
		})
	}

	order, found := h.orderService.GetOrder(req.OrderID)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", req.OrderID),
		})
	}
	if order.Status != models.OrderStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("Order %s is already %s", order.ID, order.Status),
		})
	}

	result, err := h.paymentService.Process(order.ID, req.Provider, order.Total)
	if err != nil {
		log.Printf("Error processing payment for order %s: %v", order.ID, err)
		if strings.Contains(err.Error(), "unknown payment provider") ||
			strings.Contains(err.Error(), "not yet available") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process payment",
			"error":   err.Error(),
		})
	}

	return c.JSON(result)
}
