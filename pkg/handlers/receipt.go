package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"splitscan/pkg/models"
	"splitscan/pkg/services/receipt"
)

// ReceiptHandler exposes the extraction pipeline over HTTP.
type ReceiptHandler struct {
	processor *receipt.Processor
	log       *zap.Logger
}

func NewReceiptHandler(processor *receipt.Processor, log *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{processor: processor, log: log}
}

// Scan handles a multipart receipt upload. ?mode=advanced runs the lossy
// normalizer on top of auto mode.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !receipt.SupportedType(mimeType) {
		c.JSON(http.StatusBadRequest, models.ProcessingResult{
			Success:  false,
			Error:    receipt.ErrUnsupportedFileType.Error(),
			Products: []models.ExtractedProduct{},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	var result models.ProcessingResult
	if c.Query("mode") == "advanced" {
		result = h.processor.ProcessReceiptAdvanced(c.Request.Context(), data, mimeType)
	} else {
		result = h.processor.ProcessFile(c.Request.Context(), data, mimeType)
	}

	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	h.log.Info("receipt processed",
		zap.String("fileType", result.FileType),
		zap.String("method", result.Method),
		zap.Int("products", len(result.Products)))
	c.JSON(http.StatusOK, result)
}

type parseTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseText handles manual mode: the user pastes receipt text directly.
func (h *ReceiptHandler) ParseText(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	products := h.processor.ParseReceiptText(req.Text)
	if products == nil {
		products = []models.ExtractedProduct{}
	}
	c.JSON(http.StatusOK, models.ProcessingResult{
		Success:  true,
		Text:     req.Text,
		Products: products,
	})
}

type improveRequest struct {
	Products []models.ExtractedProduct `json:"products" binding:"required"`
}

// Improve re-normalizes an already-extracted product list; the "try
// different parsing" retry.
func (h *ReceiptHandler) Improve(c *gin.Context) {
	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "products are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": h.processor.ImproveProductDetection(req.Products),
	})
}
