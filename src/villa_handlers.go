package main

import (
	"net/http"

	"villas/src/catalog"
	"villas/src/types"

	"github.com/gin-gonic/gin"
)

func villaRoutes(g *gin.Engine, c *catalog.Catalog) *gin.RouterGroup {
	villas := apiGroup(g).Group("/villas")
	villas.
		GET("", func(ctx *gin.Context) {
			list, err := c.List(ctx.Request.Context())
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			villa, err := c.Get(ctx.Request.Context(), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, villa)
		})
	return villas
}
