package main

import (
	"errors"
	"log"
	"net/http"

	"villas/src/types"

	"github.com/gin-gonic/gin"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidRange), errors.Is(err, types.ErrInvalidGuests):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error on %s %s: %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
		ctx.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
