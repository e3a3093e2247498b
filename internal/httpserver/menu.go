package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kantinho-pos/internal/domain"
	menusvc "kantinho-pos/internal/service/menu"
)

func kindParam(c *gin.Context) (domain.ItemKind, bool) {
	kind := domain.ItemKind(c.Param("kind"))
	if !domain.ValidKind(kind) {
		badRequest(c, "unknown catalog kind")
		return "", false
	}
	return kind, true
}

// listMenuHandler serves the sellable side of the catalog to the till.
func listMenuHandler(menu MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := kindParam(c)
		if !ok {
			return
		}
		items, err := menu.ListActive(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// adminListMenuHandler includes inactive items.
func adminListMenuHandler(menu MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := kindParam(c)
		if !ok {
			return
		}
		items, err := menu.List(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createMenuItemHandler(menu MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := kindParam(c)
		if !ok {
			return
		}
		var in menusvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		item, err := menu.Create(c.Request.Context(), kind, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"item": item})
	}
}

func updateMenuItemHandler(menu MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := kindParam(c); !ok {
			return
		}
		var in menusvc.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid body")
			return
		}
		item, err := menu.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

func deleteMenuItemHandler(menu MenuService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := kindParam(c); !ok {
			return
		}
		if err := menu.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
