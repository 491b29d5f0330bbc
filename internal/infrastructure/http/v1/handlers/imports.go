package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
	"factura/internal/domain/billing"
	"factura/internal/infrastructure/http/v1/dto"
)

// maxImportSize bounds uploaded spreadsheets (5MB).
const maxImportSize = 5 << 20

// ImportHandler converts uploaded spreadsheets into invoice lines.
type ImportHandler struct {
	*BaseHandler
}

// NewImportHandler creates a new import handler.
func NewImportHandler(base *BaseHandler) *ImportHandler {
	return &ImportHandler{BaseHandler: base}
}

// Articles handles POST /imports/articles. Accepts a multipart "file" field
// holding CSV, plus optional feePercentage and transport form fields used for
// the returned totals. The import is all-or-nothing: the first malformed row
// rejects the whole file.
func (h *ImportHandler) Articles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("missing file field").WithDetail("error", err.Error()))
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // row shape is validated per cell downstream
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		h.Error(c, apperror.NewValidation("unreadable csv").WithDetail("error", err.Error()))
		return
	}

	articles, err := billing.ArticlesFromRows(rows)
	if err != nil {
		h.Error(c, err)
		return
	}

	feePct := billing.FeePercentages[0]
	if v := c.PostForm("feePercentage"); v != "" {
		feePct, err = strconv.Atoi(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("feePercentage must be an integer"))
			return
		}
	}

	transport := types.Zero()
	if v := c.PostForm("transport"); v != "" {
		transport, err = types.ParseAmount(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("transport must be an amount"))
			return
		}
	}

	totals, err := billing.Calculate(articles, feePct, transport)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ImportResponse{
		Articles: make([]dto.ArticleResponse, len(articles)),
		Totals:   dto.FromTotals(totals),
	}
	for i, a := range articles {
		resp.Articles[i] = dto.FromArticle(a)
	}
	h.OK(c, resp)
}
