package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avetrov/facilityhub/internal/service/facilities"
	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	service facilities.FacilityUseCase
}

type scheduleMaintenanceRequest struct {
	StartsOn    string `json:"starts_on"`
	EndsOn      string `json:"ends_on"`
	Description string `json:"description"`
}

func NewFacilityHandler(service facilities.FacilityUseCase) *FacilityHandler {
	return &FacilityHandler{service: service}
}

func (h *FacilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/maintenance", h.listMaintenance)
	router.POST("/:id/maintenance", h.scheduleMaintenance)
	router.DELETE("/maintenance/:windowId", h.removeMaintenance)
}

func (h *FacilityHandler) list(c *gin.Context) {
	facilities, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, facilities)
}

func (h *FacilityHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	facility, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, facility)
}

func (h *FacilityHandler) listMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	windows, err := h.service.ListMaintenance(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, windows)
}

func (h *FacilityHandler) scheduleMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req scheduleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startsOn, err := time.Parse("2006-01-02", req.StartsOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_on, expected YYYY-MM-DD"})
		return
	}
	endsOn, err := time.Parse("2006-01-02", req.EndsOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ends_on, expected YYYY-MM-DD"})
		return
	}

	result, err := h.service.ScheduleMaintenance(c.Request.Context(), facilities.ScheduleMaintenanceInput{
		FacilityID:  id,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"window":             result.Window,
		"cancelled_bookings": len(result.Cancelled),
	})
}

func (h *FacilityHandler) removeMaintenance(c *gin.Context) {
	windowID, err := strconv.ParseInt(c.Param("windowId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window id"})
		return
	}
	if err := h.service.RemoveMaintenance(c.Request.Context(), windowID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
