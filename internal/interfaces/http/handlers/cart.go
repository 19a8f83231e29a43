// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"gorm.io/gorm"
)

// CartHandler drives the cart-backed sale workflow over HTTP
type CartHandler struct {
	cartService     *cart.Service
	checkoutService *checkout.Service
	clientService   *client.Service
	productService  *product.Service
	config          *config.Config
}

// NewCartHandler creates a new cart workflow handler
func NewCartHandler(db *gorm.DB, store cart.SessionStore, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:     cart.NewService(db, store, cfg),
		checkoutService: checkout.NewService(db, store, cfg),
		clientService:   client.NewService(db, cfg),
		productService:  product.NewService(db, cfg),
		config:          cfg,
	}
}

// StartSaleRequest represents the client picker submission
type StartSaleRequest struct {
	ClientID uint `json:"client_id" binding:"required"`
}

// NewSale handles GET /sales/new: the client picker data
func (h *CartHandler) NewSale(c *gin.Context) {
	clients, err := h.clientService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"clients": clients}})
}

// StartSale handles POST /sales/new: binds the cart to a client
func (h *CartHandler) StartSale(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req StartSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a valid client"})
		return
	}

	cl, err := h.cartService.StartSale(c.Request.Context(), sessionID, req.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Select a valid client"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client selected, you can now add products",
		"data":    gin.H{"client": cl},
	})
}

// GetCart handles GET /sales/cart: the cart view with computed totals
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	crt := h.cartService.Current(c.Request.Context(), sessionID)
	if crt.ClientID == nil {
		h.redirectToStart(c, "Select a client first")
		return
	}

	cl, err := h.cartService.Client(crt)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) || errors.Is(err, cart.ErrNoClient) {
			h.redirectToStart(c, "Select a client first")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	// The catalog rides along so the cart view can offer products to add
	products, err := h.productService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	totals := cart.ComputeTotals(crt)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"client":   cl,
			"items":    totals.Lines,
			"total":    totals.Total,
			"products": products,
		},
	})
}

// AddItem handles POST /sales/cart: appends one line to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, err := h.cartService.AddItem(c.Request.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNoClient):
			h.redirectToStart(c, "Select a client first")
		case errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrInvalidQty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		}
		return
	}

	added := crt.Items[len(crt.Items)-1]
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Added: %s x%d", added.Name, added.Quantity),
		"data":    cart.ComputeTotals(crt),
	})
}

// RemoveItem handles POST /sales/cart/remove/:index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index parameter"})
		return
	}

	crt, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, index)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    cart.ComputeTotals(crt),
	})
}

// ConfirmSale handles POST /sales/confirm: commits the cart
func (h *CartHandler) ConfirmSale(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	sl, err := h.checkoutService.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, client.ErrNotFound), errors.Is(err, product.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Sale #%d confirmed successfully", sl.ID),
		"data":    sl,
	})
}

// CancelSale handles GET/POST /sales/cancel: aborts the cart
func (h *CartHandler) CancelSale(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.cartService.Cancel(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale cancelled"})
}

// redirectToStart points the caller back at the client picker instead
// of failing the request outright.
func (h *CartHandler) redirectToStart(c *gin.Context, message string) {
	c.Header("Location", "/api/v1/sales/new")
	c.JSON(http.StatusSeeOther, gin.H{
		"message":  message,
		"redirect": "/api/v1/sales/new",
	})
}

// getOrCreateSessionID reads the session cookie, minting a fresh id
// when the browser has none yet.
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	if sessionID, err := c.Cookie(h.config.Session.CookieName); err == nil && sessionID != "" {
		return sessionID
	}

	sessionID := uuid.NewString()
	c.SetCookie(
		h.config.Session.CookieName,
		sessionID,
		int(h.config.Session.TTL.Seconds()),
		"/",
		"",
		h.config.IsProduction(),
		true,
	)
	return sessionID
}
