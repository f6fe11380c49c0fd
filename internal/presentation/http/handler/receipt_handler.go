package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler renders receipts for stored transactions
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get returns the receipt as JSON
func (h *ReceiptHandler) Get(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print returns the browser print view
func (h *ReceiptHandler) Print(c *gin.Context) {
	h.render(c, "text/html; charset=utf-8", "", h.receiptService.WriteHTML)
}

// PDF returns the receipt as a PDF document
func (h *ReceiptHandler) PDF(c *gin.Context) {
	h.render(c, "application/pdf", "pdf", h.receiptService.WritePDF)
}

// PNG returns the receipt as an image
func (h *ReceiptHandler) PNG(c *gin.Context) {
	h.render(c, "image/png", "png", h.receiptService.WritePNG)
}

func (h *ReceiptHandler) render(c *gin.Context, contentType, ext string, write func(io.Writer, *entity.Receipt) error) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, receipt); err != nil {
		log.Error().Err(err).Str("transaction_id", receipt.TransactionID).Msg("receipt render failed")
		response.InternalServerError(c, "Failed to render receipt")
		return
	}

	if ext != "" {
		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.%s"`, receipt.ReceiptNo, ext))
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
