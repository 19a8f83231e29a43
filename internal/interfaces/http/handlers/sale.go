// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/client"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/sale"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SaleHandler handles sale endpoints: REST CRUD, post-commit line-item
// editing, and receipt downloads
type SaleHandler struct {
	saleService *sale.Service
	pdfService  *pdf.Service
	config      *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, cfg *config.Config) *SaleHandler {
	return &SaleHandler{
		saleService: sale.NewService(db, cfg),
		pdfService:  pdf.NewService(cfg),
		config:      cfg,
	}
}

// GetSales handles GET /sales
func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.saleService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sales})
}

// GetSale handles GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sl, err := h.saleService.Get(id)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  sl,
		"total": sl.Total(),
	})
}

// CreateSale handles POST /sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req sale.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sl, err := h.saleService.Create(&req)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale created successfully",
		"data":    sl,
	})
}

// UpdateSale handles PUT /sales/:id
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sale.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sl, err := h.saleService.Update(id, &req)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale updated successfully",
		"data":    sl,
	})
}

// DeleteSale handles DELETE /sales/:id
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.Delete(id); err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

// EditSale handles GET /sales/:id/edit
func (h *SaleHandler) EditSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sl, err := h.saleService.Get(id)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	lines, total := h.saleService.DetailLines(sl)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"sale":  sl,
			"lines": lines,
			"total": total,
		},
	})
}

// AddSaleDetail handles POST /sales/:id/edit
func (h *SaleHandler) AddSaleDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sale.AddDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.saleService.AddDetail(id, &req)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Added: %s x%d", detail.Product.Name, detail.Quantity),
		"data":    detail,
	})
}

// RemoveSaleDetail handles POST /sales/:id/detail/:detail_id/delete
func (h *SaleHandler) RemoveSaleDetail(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detailID, ok := parseIDParam(c, "detail_id")
	if !ok {
		return
	}

	if err := h.saleService.RemoveDetail(saleID, detailID); err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from sale"})
}

// GetReceipt handles GET /sales/:id/receipt
func (h *SaleHandler) GetReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sl, err := h.saleService.Get(id)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	buf, err := h.pdfService.GenerateReceipt(sl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", sl.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// CreateSaleDetailRequest represents direct detail creation against a sale
type CreateSaleDetailRequest struct {
	SaleID    uint `json:"sale_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// GetSaleDetails handles GET /saledetails
func (h *SaleHandler) GetSaleDetails(c *gin.Context) {
	details, err := h.saleService.ListDetails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": details})
}

// GetSaleDetail handles GET /saledetails/:id
func (h *SaleHandler) GetSaleDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.saleService.GetDetail(id)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// CreateSaleDetail handles POST /saledetails
func (h *SaleHandler) CreateSaleDetail(c *gin.Context) {
	var req CreateSaleDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.saleService.AddDetail(req.SaleID, &sale.AddDetailRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale detail created successfully",
		"data":    detail,
	})
}

// UpdateSaleDetail handles PUT /saledetails/:id
func (h *SaleHandler) UpdateSaleDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req sale.UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.saleService.UpdateDetail(id, &req)
	if err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale detail updated successfully",
		"data":    detail,
	})
}

// DeleteSaleDetail handles DELETE /saledetails/:id
func (h *SaleHandler) DeleteSaleDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteDetail(id); err != nil {
		h.respondSaleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale detail deleted successfully"})
}

// respondSaleError maps domain errors onto HTTP responses
func (h *SaleHandler) respondSaleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sale.ErrNotFound),
		errors.Is(err, sale.ErrDetailNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, client.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, sale.ErrInvalidQty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
