package main

import (
	"log"
	"net/http"

	"villas/src/booking"
	"villas/src/types"

	"github.com/gin-gonic/gin"
)

func bookingRoutes(g *gin.Engine, m *booking.Manager) *gin.RouterGroup {
	bookings := apiGroup(g).Group("/bookings")
	bookings.
		GET("/availability", func(ctx *gin.Context) {
			var query types.AvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ok, err := m.IsAvailable(ctx.Request.Context(), query.VillaID, query.CheckIn, query.CheckOut)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, types.APIResponseAvailability{Available: ok, VillaID: query.VillaID})
		}).
		POST("", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("[bookings] Invalid request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			b, err := m.Create(ctx.Request.Context(), booking.CreateInput{
				VillaID:   body.VillaID,
				GuestName: body.GuestName,
				Email:     body.Email,
				Phone:     body.Phone,
				CheckIn:   body.CheckIn,
				CheckOut:  body.CheckOut,
				Guests:    body.Guests,
			})
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, b)
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			b, err := m.Get(ctx.Request.Context(), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, b)
		})
	return bookings
}
