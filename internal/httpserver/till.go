package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kantinho-pos/internal/checkout"
	"kantinho-pos/internal/domain"
)

func variantParam(c *gin.Context) (checkout.Variant, bool) {
	switch v := c.DefaultQuery("variant", string(checkout.VariantInvoice)); checkout.Variant(v) {
	case checkout.VariantInvoice:
		return checkout.VariantInvoice, true
	case checkout.VariantSimplified:
		return checkout.VariantSimplified, true
	default:
		badRequest(c, "unknown receipt variant")
		return "", false
	}
}

func cartHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		variant, ok := variantParam(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, till.Cart(variant))
	}
}

func addItemHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			MenuItemID string      `json:"menuItemId"`
			Size       domain.Size `json:"size"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		view, err := till.AddMenuItem(c.Request.Context(), in.MenuItemID, in.Size)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addExtraHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			MenuItemID string `json:"menuItemId"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		view, err := till.AddExtra(c.Request.Context(), c.Param("lineID"), in.MenuItemID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateQuantityHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		c.JSON(http.StatusOK, till.UpdateQuantity(c.Param("lineID"), in.Quantity))
	}
}

func removeLineHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, till.RemoveLine(c.Param("lineID")))
	}
}

func clearCartHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, till.ClearCart())
	}
}

func halfFlowHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, till.HalfFlow())
	}
}

func startHalfHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Size domain.Size `json:"size"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		flow, err := till.StartHalfAndHalf(in.Size)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow)
	}
}

func chooseHalfHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			MenuItemID string `json:"menuItemId"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		flow, err := till.ChooseHalf(c.Request.Context(), in.MenuItemID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow)
	}
}

func backHalfHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, till.BackHalf())
	}
}

func cancelHalfHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, till.CancelHalf())
	}
}

func confirmHalfHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := till.ConfirmHalf()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func checkoutHandler(till TillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		variant, ok := variantParam(c)
		if !ok {
			return
		}
		var in struct {
			UserID string `json:"userId"`
			checkout.CustomerMeta
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		order, points, err := till.Checkout(c.Request.Context(), in.UserID, in.CustomerMeta, variant)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order, "loyaltyPointsEarned": points})
	}
}
