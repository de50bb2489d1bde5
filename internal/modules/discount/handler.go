package discount

import (
	"errors"
	"net/http"
	"time"

	"hoteladmin/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/discounts/validate", h.ValidateCode)
	rg.POST("/discounts", h.CreateDiscount)
	rg.GET("/discounts", h.ListDiscounts)
}

func (h *Handler) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bc := BookingContext{
		RoomID:        req.RoomID,
		UserID:        req.UserID,
		BookingAmount: req.BookingAmount,
	}
	if req.CheckIn != "" {
		t, err := time.Parse(dateLayout, req.CheckIn)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_in date")
			return
		}
		t = t.UTC()
		bc.CheckIn = &t
	}
	if req.CheckOut != "" {
		t, err := time.Parse(dateLayout, req.CheckOut)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check_out date")
			return
		}
		t = t.UTC()
		bc.CheckOut = &t
	}

	res, err := h.service.CheckCode(c.Request.Context(), req.Code, bc)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "DISCOUNT_NOT_FOUND", "Unknown discount code")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to validate discount code")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create discount")
		return
	}

	response.Success(c, http.StatusCreated, d)
}

func (h *Handler) ListDiscounts(c *gin.Context) {
	ds, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list discounts")
		return
	}
	response.Success(c, http.StatusOK, ds)
}
