package controllers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models"
	"github.com/braxton0054/eavisystem/internal/middleware"
	"github.com/braxton0054/eavisystem/internal/pkg/apperrors"
)

// FeeService stores fee-structure documents.
type FeeService interface {
	List(ctx context.Context) ([]models.FeeDocument, error)
	Upload(fileHeader *multipart.FileHeader) (*models.FeeDocument, error)
	Download(ctx context.Context, filename string) ([]byte, error)
}

// FeeController handles fee-structure documents
type FeeController struct {
	feeService FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// ListFees returns the uploaded fee structures
// @Summary List fee structures
// @Tags fees
// @Produce json
// @Param campus path string true "Campus key"
// @Success 200 {object} dto.StructuredResponse{data=[]models.FeeDocument}
// @Router /{campus}/fees [get]
func (c *FeeController) ListFees(ctx *gin.Context) {
	docs, err := c.feeService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, docs, "Fee structures retrieved successfully")
}

// UploadFee stores a fee-structure PDF
// @Summary Upload a fee structure
// @Tags fees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param campus path string true "Campus key"
// @Param file formData file true "Fee structure PDF"
// @Success 201 {object} dto.StructuredResponse{data=models.FeeDocument}
// @Failure 400 {object} dto.ErrorResponse "Not a PDF or too large"
// @Router /{campus}/fees/upload [post]
func (c *FeeController) UploadFee(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "No file uploaded"))
		return
	}

	doc, err := c.feeService.Upload(fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, doc, "Fee structure uploaded successfully")
}

// DownloadFee streams a fee-structure PDF
// @Summary Download a fee structure
// @Tags fees
// @Produce application/pdf
// @Param campus path string true "Campus key"
// @Param filename path string true "Stored filename"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /{campus}/fees/download/{filename} [get]
func (c *FeeController) DownloadFee(ctx *gin.Context) {
	filename := ctx.Param("filename")
	data, err := c.feeService.Download(ctx.Request.Context(), filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, filename, data)
}
