package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	handler "sms-transaction-backend/internal/handlers"
	"sms-transaction-backend/internal/repository"
	service "sms-transaction-backend/internal/services/ingestion"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log zerolog.Logger) {
	transactionRepo := repository.NewTransactionRepository(db)
	batchRepo := repository.NewIngestBatchRepository(db)

	ingestService := service.NewIngestionService(
		transactionRepo,
		batchRepo,
		log,
	)

	ingestHandler := handler.NewIngestHandler(ingestService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Ingest batch routes
	ingest := api.Group("/ingest")
	ingest.POST("/messages", ingestHandler.IngestMessages)
	ingest.GET("/:batchId", ingestHandler.GetBatchProgress)
	ingest.GET("/:batchId/transactions", ingestHandler.ListTransactions)

	// Message-level routes
	messages := api.Group("/messages")
	messages.POST("/classify", ingestHandler.ClassifyMessage)
	messages.POST("/parse", ingestHandler.ParseMessage)

	// Transaction routes
	transactions := api.Group("/transactions")
	{
		transactions.GET("", ingestHandler.RecentTransactions)
		transactions.GET("/stats", ingestHandler.TransactionStats)
	}
}
