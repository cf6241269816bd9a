package api

import (
	"net/http"
	"strconv"

	"github.com/avetrov/facilityhub/internal/service/credit"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service credit.CreditUseCase
}

func NewAccountHandler(service credit.CreditUseCase) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.register)
	router.GET("/:id/balance", h.balance)
}

func (h *AccountHandler) register(c *gin.Context) {
	var req credit.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             account.ID,
		"name":           account.Name,
		"email":          account.Email,
		"credit_balance": account.CreditBalance.String(),
	})
}

func (h *AccountHandler) balance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	balance, err := h.service.Balance(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"account_id": id, "credit_balance": balance.String()})
}
