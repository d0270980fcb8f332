package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := &supplierHandler{supplierService: supplierService}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplierID", h.getSupplier)
		suppliers.PUT("/:supplierID", h.updateSupplier)
		suppliers.DELETE("/:supplierID", h.deleteSupplier)
	}
}

// createSupplier godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body dto.ContactRequest true "Supplier details"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListSuppliersResponse
// @Security BearerAuth
// @Router /api/v1/suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSuppliersResponse(suppliers))
}

// getSupplier godoc
// @Summary Get a supplier
// @Tags suppliers
// @Produce json
// @Param supplierID path string true "Supplier ID"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/suppliers/{supplierID} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), userID, c.Param("supplierID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// updateSupplier godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplierID path string true "Supplier ID"
// @Param supplier body dto.ContactRequest true "Supplier details"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/suppliers/{supplierID} [put]
func (h *supplierHandler) updateSupplier(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), userID, c.Param("supplierID"), req)
	if err != nil {
		respondError(c, err, "Failed to update supplier")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// deleteSupplier godoc
// @Summary Delete a supplier
// @Description Expenses keep their data but lose the supplier link.
// @Tags suppliers
// @Param supplierID path string true "Supplier ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/suppliers/{supplierID} [delete]
func (h *supplierHandler) deleteSupplier(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.supplierService.DeleteSupplier(c.Request.Context(), userID, c.Param("supplierID")); err != nil {
		respondError(c, err, "Failed to delete supplier")
		return
	}
	c.Status(http.StatusNoContent)
}
