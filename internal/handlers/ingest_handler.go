package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	service "sms-transaction-backend/internal/services/ingestion"
	"sms-transaction-backend/internal/services/parsing"
)

type IngestHandler struct {
	service *service.IngestionService
}

func NewIngestHandler(s *service.IngestionService) *IngestHandler {
	return &IngestHandler{service: s}
}

// IngestMessages accepts a batch of raw inbox messages, creates a
// batch, and processes it in background
func (h *IngestHandler) IngestMessages(c *gin.Context) {
	var payload struct {
		Source   string               `json:"source"`
		Messages []parsing.RawMessage `json:"messages"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(payload.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages required"})
		return
	}

	source := payload.Source
	if source == "" {
		source = "inbox"
	}

	batch := h.service.CreateBatch(source, len(payload.Messages))

	go h.service.ProcessMessages(batch.ID, payload.Messages)

	c.JSON(http.StatusAccepted, gin.H{
		"batch_id": batch.ID.String(),
		"status":   "processing",
	})
}

func (h *IngestHandler) GetBatchProgress(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	batch, err := h.service.GetBatch(batchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"processed_count": batch.ProcessedCount,
		"total":           batch.TotalMessages,
		"parsed_count":    batch.ParsedCount,
		"rejected_count":  batch.RejectedCount,
		"duplicate_count": batch.DuplicateCount,
		"status":          batch.Status,
	})
}

func (h *IngestHandler) ListTransactions(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	direction := c.Query("direction")
	cursor := c.Query("cursor")
	search := c.Query("search")
	limit := 50

	items, nextCursor, hasMore := h.service.ListTransactions(batchID, direction, cursor, limit, search)
	stats, _ := h.service.GetBatchStats(batchID)

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"next_cursor": nextCursor,
		"has_more":    hasMore,
		"stats":       stats,
	})
}

// ClassifyMessage answers whether a single message would be parsed and
// which extraction variant applies
func (h *IngestHandler) ClassifyMessage(c *gin.Context) {
	var msg parsing.RawMessage
	if err := c.BindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	isTransaction := parsing.IsTransactionMessage(msg)
	variant := "rejected"
	if isTransaction {
		if parsing.IsInstantPaymentMessage(msg) {
			variant = "instant_payment"
		} else {
			variant = "generic_bank"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"is_transaction": isTransaction,
		"variant":        variant,
	})
}

// ParseMessage parses a single message without persisting it
func (h *IngestHandler) ParseMessage(c *gin.Context) {
	var msg parsing.RawMessage
	if err := c.BindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tx := parsing.Parse(msg)
	if tx == nil {
		c.JSON(http.StatusOK, gin.H{"parsed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"parsed": true, "transaction": tx})
}

// TransactionStats returns per-direction count and sum aggregates
// across all batches
func (h *IngestHandler) TransactionStats(c *gin.Context) {
	stats, err := h.service.GetOverallStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RecentTransactions lists the newest stored transactions across batches
func (h *IngestHandler) RecentTransactions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	search := c.Query("search")
	direction := c.Query("direction")

	var err error
	var txs interface{}
	if search != "" || direction != "" {
		txs, err = h.service.TransactionRepo().SearchTransactions(search, direction, limit)
	} else {
		txs, err = h.service.TransactionRepo().Recent(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": txs})
}
