package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type insertBarcodeRequest struct {
	BarcodeData string `json:"barcodeData"`
}

// InsertBarcode handles the POST /api/insert request.
func (h *Handler) InsertBarcode(c *gin.Context) {
	var req insertBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "no barcode data provided",
		})
		return
	}

	entry, err := h.store.AppendBarcode(c.Request.Context(), strings.TrimSpace(req.BarcodeData))
	if err != nil {
		respondError(c, "error inserting data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "data inserted successfully",
		"data":    entry,
	})
}

// FetchBarcodes handles the GET /api/fetch request.
func (h *Handler) FetchBarcodes(c *gin.Context) {
	entries, err := h.store.ListBarcodes(c.Request.Context())
	if err != nil {
		respondError(c, "error retrieving data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "data retrieved successfully",
		"data":    entries,
	})
}
