package api

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/dbostatement/internal/dbo"
	"github.com/guttosm/dbostatement/internal/domain/dto"
	"github.com/guttosm/dbostatement/internal/middleware"
	"github.com/guttosm/dbostatement/internal/service"
)

// uploadField is the multipart form field carrying the export.
const uploadField = "file"

// Handler provides HTTP handlers for statement endpoints.
//
// Responsibilities:
//   - Validate the upload and path parameters
//   - Delegate import and lookup to the service layer
//   - Translate parse and storage errors into status codes and DTOs
type Handler struct {
	svc service.StatementService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.StatementService) *Handler {
	return &Handler{svc: svc}
}

// UploadStatement handles POST /api/v1/statements.
//
// UploadStatement godoc
// @Summary      Import a DBO export
// @Description  Parses a Windows-1251, semicolon separated DBO export and stores it under its file name
// @Tags         statements
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "DBO export (.csv)"
// @Success      201   {object}  dto.StatementResponse   "Imported"
// @Failure      400   {object}  dto.ErrorResponse       "Missing file or unreadable export"
// @Failure      409   {object}  dto.ErrorResponse       "Already imported"
// @Failure      413   {object}  dto.ErrorResponse       "Upload too large"
// @Failure      422   {object}  dto.ParseErrorResponse  "A data row failed to parse"
// @Failure      500   {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/statements [post]
func (h *Handler) UploadStatement(c *gin.Context) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "upload too large", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, `multipart field "file" is required`, err)
		return
	}

	name := filepath.Base(fh.Filename)
	if name == "." || name == string(filepath.Separator) {
		middleware.AbortWithError(c, http.StatusBadRequest, "upload has no file name", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "cannot open upload", err)
		return
	}
	defer f.Close()

	sum, err := h.svc.Import(c.Request.Context(), name, f)
	if err != nil {
		h.writeImportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewStatementResponse(*sum))
}

func (h *Handler) writeImportError(c *gin.Context, err error) {
	var rowErr *dbo.RowError
	var readErr *dbo.ReadError

	switch {
	case errors.As(err, &rowErr):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ParseErrorResponse{
			Row:     rowErr.Row,
			Column:  rowErr.Column,
			Field:   rowErr.Field,
			Message: rowErr.Error(),
		})
	case errors.As(err, &readErr):
		middleware.AbortWithError(c, http.StatusBadRequest, "export is not a readable DBO file", readErr)
	case errors.Is(err, service.ErrAlreadyImported):
		middleware.AbortWithError(c, http.StatusConflict, "statement already imported", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to import statement", err)
	}
}

// GetStatement handles GET /api/v1/statements/{id}.
//
// GetStatement godoc
// @Summary      Get an imported statement
// @Description  Returns record count, operation date range and totals of a stored statement
// @Tags         statements
// @Produce      json
// @Param        id   path      string  true  "Statement id (UUID)"
// @Success      200  {object}  dto.StatementResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse      "Not Found"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/statements/{id} [get]
func (h *Handler) GetStatement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid statement id", err)
		return
	}

	sum, err := h.svc.GetSummary(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		middleware.AbortWithError(c, http.StatusNotFound, "statement not found", nil)
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch statement", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatementResponse(*sum))
}
