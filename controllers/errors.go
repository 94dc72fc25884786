package controllers

import (
	"errors"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// map error taxonomy ของ services → HTTP status เดียวกันทุก endpoint
func writeServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var te *services.InvalidTransitionError
	switch {
	case errors.As(err, &ve):
		resp.BadRequest(c, ve.Error())
	case errors.As(err, &te):
		resp.Conflict(c, "invalid_transition", te.Error())
	case errors.Is(err, services.ErrUnauthorized):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, "conflict", "already taken or already done, re-fetch and retry")
	case errors.Is(err, services.ErrStoreUnavailable):
		resp.Unavailable(c, "store unavailable")
	default:
		resp.ServerError(c, err)
	}
}
