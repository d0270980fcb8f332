package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.ContactRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Lists the caller's customers ordered by name.
// @Tags customers
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	customers, err := h.customerService.ListCustomers(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetCustomer(c.Request.Context(), userID, c.Param("customerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param customer body dto.ContactRequest true "Customer details"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/customers/{customerID} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), userID, c.Param("customerID"), req)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Customers that still have invoices cannot be deleted.
// @Tags customers
// @Param customerID path string true "Customer ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Customer has invoices"
// @Security BearerAuth
// @Router /api/v1/customers/{customerID} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.customerService.DeleteCustomer(c.Request.Context(), userID, c.Param("customerID")); err != nil {
		respondError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
