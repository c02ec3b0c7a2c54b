package handlers

import (
	"log"

	"luxio/internal/models"
	"luxio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	cartService    *services.CartService
	productService *services.ProductService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, productService *services.ProductService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		productService: productService,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// cartResponse renders the cart together with its derived total and item
// count. The total is computed server-side against the live catalog, never
// taken from the client.
func (h *CartHandler) cartResponse(c *fiber.Ctx, cart []models.CartItem) error {
	catalog, err := h.productService.CatalogByID()
	if err != nil {
		log.Printf("Error loading catalog for cart totals: %v", err)
		// An unreadable catalog only loses the total, not the cart.
		catalog = models.Catalog{}
	}

	return c.JSON(fiber.Map{
		"items":     cart,
		"total":     services.CartTotal(cart, catalog),
		"itemCount": services.CartItemCount(cart),
	})
}

// HandleGetCart returns the persisted cart with its totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return h.cartResponse(c, h.cartService.Load())
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the cart, merging quantities if the
// product is already present. A missing quantity defaults to 1.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID is required.",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be at least 1.",
		})
	}

	cart := h.cartService.Add(req.ProductID, req.Quantity)
	return h.cartResponse(c, cart)
}

// SetQuantityRequest represents the request body for updating an entry's
// quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity sets an entry's quantity to an absolute value. Zero or a
// negative value removes the entry.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart := h.cartService.SetQuantity(c.Params("id"), req.Quantity)
	return h.cartResponse(c, cart)
}

// HandleRemoveItem removes a product from the cart. Removing an absent
// product is a no-op.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart := h.cartService.Remove(c.Params("id"))
	return h.cartResponse(c, cart)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cartService.Clear()
	return h.cartResponse(c, []models.CartItem{})
}
