package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func dailySalesHandler(sales SalesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		daily, err := sales.Daily(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"daily": daily})
	}
}

func weeklySalesHandler(sales SalesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		weekly, err := sales.Weekly(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"weekly": weekly})
	}
}

func monthlySalesHandler(sales SalesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		monthly, err := sales.Monthly(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"monthly": monthly})
	}
}

func topItemsHandler(sales SalesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := sales.TopItems(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"topItems": top})
	}
}

func summaryHandler(sales SalesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := sales.Summarize(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
