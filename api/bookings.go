package api

import (
	"net/http"
	"time"

	"github.com/avetrov/facilityhub/internal/domain"
	"github.com/avetrov/facilityhub/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FacilityID  int64  `json:"facility_id"`
	AccountID   int64  `json:"account_id"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Credits     string `json:"credits"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type bookingResponse struct {
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	FacilityID int64  `json:"facility_id"`
	AccountID  int64  `json:"account_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	Credits    string `json:"credits"`
	Title      string `json:"title"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Reference:  b.Reference,
		Status:     string(b.Status),
		FacilityID: b.FacilityID,
		AccountID:  b.AccountID,
		Date:       b.BookedOn.Format("2006-01-02"),
		TimeSlot:   b.TimeSlot,
		Credits:    b.Credits.String(),
		Title:      b.Title,
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:reference", h.get)
	router.PUT("/:reference/approve", h.approve)
	router.PUT("/:reference/reject", h.reject)
	router.PUT("/:reference/confirm", h.confirm)
	router.DELETE("/:reference", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FacilityID:  req.FacilityID,
		AccountID:   req.AccountID,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		Credits:     req.Credits,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) approve(c *gin.Context) {
	b, err := h.service.ApproveBooking(c.Request.Context(), c.Param("reference"), actorFrom(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) reject(c *gin.Context) {
	b, err := h.service.RejectBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	b, err := h.service.ConfirmBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("reference"), actorFrom(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

// actorFrom distinguishes administrator calls; authorization itself is
// handled upstream of this service.
func actorFrom(c *gin.Context) domain.Actor {
	if c.Query("actor") == string(domain.ActorAdmin) {
		return domain.ActorAdmin
	}
	return domain.ActorSystem
}
