package main

import (
	"net/http"

	"villas/src/payments"
	"villas/src/types"

	"github.com/gin-gonic/gin"
)

func paymentRoutes(g *gin.Engine, e *payments.Engine) *gin.RouterGroup {
	p := apiGroup(g).Group("/payments")
	p.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, err := e.CreateCheckoutSession(ctx.Request.Context(), body.BookingID, body.OriginURL)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/status/:session_id", func(ctx *gin.Context) {
			var params types.SessionRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, err := e.PollStatus(ctx.Request.Context(), params.SessionID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, res)
		})
	return p
}
