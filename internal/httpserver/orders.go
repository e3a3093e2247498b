package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kantinho-pos/internal/domain"
)

func listOrdersHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func getOrderHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func setOrderStatusHandler(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Status domain.OrderStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		if !domain.ValidStatus(in.Status) {
			badRequest(c, "unknown order status")
			return
		}
		if err := orders.SetStatus(c.Request.Context(), c.Param("id"), in.Status); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
