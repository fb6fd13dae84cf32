// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
)

// campusParam is the route parameter naming the campus database.
const campusParam = "campus"

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewStructuredResponse(data, message))
}

// idParam parses the :id route parameter, answering 400 when it is not a
// positive integer.
func idParam(ctx *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, fmt.Sprintf("Invalid %s ID", what)).
			WithField("id")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// sendPDF streams a PDF as a download.
func sendPDF(ctx *gin.Context, filename string, data []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "application/pdf", data)
}
