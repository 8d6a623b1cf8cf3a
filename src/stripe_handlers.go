package main

import (
	"io"
	"log"
	"net/http"

	"villas/src/payments"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = int64(65536)

// stripeWebhookRoute acknowledges every delivery. Rejected or failed events are logged by the engine.
func stripeWebhookRoute(g *gin.Engine, e *payments.Engine) *gin.RouterGroup {
	apiv1 := apiGroup(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.JSON(http.StatusOK, gin.H{"status": "success"})
			return
		}
		if err := e.HandleWebhook(ctx.Request.Context(), payload, ctx.GetHeader("Stripe-Signature")); err != nil {
			log.Printf("[StripeEvent] %s\n", err.Error())
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return apiv1
}
