package main

import (
	"net/http"

	"villas/src/common"
	"villas/src/types"

	"github.com/gin-gonic/gin"
)

func contactRoutes(g *gin.Engine, c *common.ContactService) *gin.RouterGroup {
	apiv1 := apiGroup(g)
	apiv1.POST("/contact", func(ctx *gin.Context) {
		var body types.ContactRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		submission, err := c.Submit(ctx.Request.Context(), &body)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "Thank you for your message. We'll get back to you soon!", "id": submission.ID})
	})
	return apiv1
}
