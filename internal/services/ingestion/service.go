package ingestion

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"sms-transaction-backend/internal/models"
	"sms-transaction-backend/internal/repository"
	"sms-transaction-backend/internal/services/dedup"
	"sms-transaction-backend/internal/services/parsing"
)

type IngestionService struct {
	transactionRepo *repository.TransactionRepository
	batchRepo       *repository.IngestBatchRepository
	db              *gorm.DB
	log             zerolog.Logger
	progressCache   sync.Map // batchID -> *Progress
	statsCache      sync.Map // batchID -> *BatchStats
}

type Progress struct {
	ProcessedCount int
	Total          int
	Status         string
}

func NewIngestionService(
	transactionRepo *repository.TransactionRepository,
	batchRepo *repository.IngestBatchRepository,
	log zerolog.Logger,
) *IngestionService {
	return &IngestionService{
		transactionRepo: transactionRepo,
		batchRepo:       batchRepo,
		db:              transactionRepo.DB(),
		log:             log,
	}
}

// CreateBatch creates a new IngestBatch in DB
func (s *IngestionService) CreateBatch(source string, total int) *models.IngestBatch {
	batch := &models.IngestBatch{
		ID:            uuid.New(),
		Source:        source,
		TotalMessages: total,
		Status:        "processing",
		StartedAt:     time.Now(),
		CreatedAt:     time.Now(),
	}

	s.db.Create(batch)
	return batch
}

// ProcessMessages runs the parse/dedupe pipeline over one batch of raw
// messages and persists the survivors. One malformed message never
// affects the others: rejects are logged to the audit table and
// skipped.
func (s *IngestionService) ProcessMessages(batchID uuid.UUID, messages []parsing.RawMessage) {
	var parsed []parsing.ParsedTransaction
	rejected := 0

	for i, msg := range messages {
		tx := parsing.Parse(msg)
		if tx == nil {
			rejected++
			s.recordRejection(batchID, msg)
		} else {
			parsed = append(parsed, *tx)
		}

		if (i+1)%100 == 0 {
			s.UpdateBatchProgress(batchID, i+1)
			s.UpdateBatchProgressCache(batchID, i+1)
		}
	}

	survivors := dedup.Dedupe(parsed)
	duplicates := len(parsed) - len(survivors)

	stored := 0
	for i := range survivors {
		row := s.toRow(batchID, &survivors[i])
		inserted, err := s.transactionRepo.InsertIgnoringDuplicates(row)
		if err != nil {
			s.log.Error().Err(err).Int64("message_id", row.MessageID).Msg("failed to store transaction")
			continue
		}
		if !inserted {
			// reference id already stored by an earlier batch
			duplicates++
			continue
		}
		stored++
	}

	s.MarkBatchCompleted(batchID, len(messages), stored, rejected, duplicates)
	s.MarkBatchCompletedCache(batchID, len(messages))

	s.log.Info().
		Str("batch_id", batchID.String()).
		Int("total", len(messages)).
		Int("stored", stored).
		Int("rejected", rejected).
		Int("duplicates", duplicates).
		Msg("batch processed")
}

func (s *IngestionService) toRow(batchID uuid.UUID, tx *parsing.ParsedTransaction) *models.Transaction {
	row := &models.Transaction{
		ID:             uuid.New(),
		IngestBatchID:  batchID,
		MessageID:      tx.MessageID,
		Amount:         tx.Amount,
		Direction:      string(tx.Direction),
		Merchant:       tx.Merchant,
		AccountSuffix:  tx.AccountSuffix,
		ReferenceID:    tx.ReferenceID,
		TransactionAt:  time.UnixMilli(tx.TimestampMillis),
		Body:           tx.Body,
		SenderAddress:  tx.SenderAddress,
		BalanceAfter:   tx.BalanceAfter,
		Location:       tx.Location,
		PaymentAddress: tx.PaymentAddress,
		PaymentMethod:  tx.PaymentMethod,
		CreatedAt:      time.Now(),
	}

	details := map[string]interface{}{
		"merchant_resolved":  tx.Merchant != nil,
		"reference_resolved": tx.ReferenceID != nil,
		"account_resolved":   tx.AccountSuffix != nil,
		"balance_resolved":   tx.BalanceAfter != nil,
		"location_resolved":  tx.Location != nil,
		"instant_payment":    tx.PaymentMethod != nil,
	}
	detailsJSON, _ := json.Marshal(details)
	row.ExtractionDetails = detailsJSON

	return row
}

func (s *IngestionService) recordRejection(batchID uuid.UUID, msg parsing.RawMessage) {
	reason := "unparseable core fields"
	if !parsing.IsTransactionMessage(msg) {
		reason = "not a transaction"
	}

	snippet := msg.Body
	if len(snippet) > 160 {
		snippet = snippet[:160]
	}

	s.db.Create(&models.ParseAuditLog{
		ID:            uuid.New(),
		IngestBatchID: batchID,
		MessageID:     msg.ID,
		SenderAddress: msg.SenderAddress,
		Reason:        reason,
		BodySnippet:   snippet,
		CreatedAt:     time.Now(),
	})
}

func (s *IngestionService) GetBatch(batchID uuid.UUID) (*models.IngestBatch, error) {
	var batch models.IngestBatch
	if err := s.db.First(&batch, "id = ?", batchID).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *IngestionService) ListTransactions(
	batchID uuid.UUID,
	direction string,
	cursor string,
	limit int,
	search string,
) ([]models.Transaction, string, bool) {

	var txs []models.Transaction
	query := s.db.
		Where("ingest_batch_id = ?", batchID).
		Order("id ASC").
		Limit(limit + 1)

	// filter by direction
	if direction != "" && direction != "all" {
		query = query.Where("direction = ?", direction)
	}

	// filter by cursor
	if cursor != "" {
		query = query.Where("id > ?", cursor)
	}

	// filter by search (merchant or body)
	if search != "" {
		likeQuery := "%" + search + "%"
		query = query.Where(
			"merchant ILIKE ? OR body ILIKE ?",
			likeQuery, likeQuery,
		)
	}

	query.Find(&txs)

	hasMore := false
	var nextCursor string

	if len(txs) > limit {
		hasMore = true
		nextCursor = txs[limit-1].ID.String()
		txs = txs[:limit]
	}

	return txs, nextCursor, hasMore
}

type BatchStats struct {
	Total       int64   `json:"total"`
	TotalAmount float64 `json:"total_amount"`

	DebitCount int64   `json:"debit_count"`
	DebitSum   float64 `json:"debit_sum"`

	CreditCount int64   `json:"credit_count"`
	CreditSum   float64 `json:"credit_sum"`

	UnknownCount int64   `json:"unknown_count"`
	UnknownSum   float64 `json:"unknown_sum"`
}

type statRow struct {
	Direction string
	Count     int64
	Sum       float64
}

func (s *IngestionService) GetBatchStats(batchID uuid.UUID) (BatchStats, error) {
	var stats BatchStats
	var rows []statRow

	err := s.db.Model(&models.Transaction{}).
		Where("ingest_batch_id = ?", batchID).
		Select("direction, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, r := range rows {
		stats.Total += r.Count
		stats.TotalAmount += r.Sum

		switch r.Direction {
		case string(parsing.DirectionDebit):
			stats.DebitCount = r.Count
			stats.DebitSum = r.Sum
		case string(parsing.DirectionCredit):
			stats.CreditCount = r.Count
			stats.CreditSum = r.Sum
		case string(parsing.DirectionUnknown):
			stats.UnknownCount = r.Count
			stats.UnknownSum = r.Sum
		}
	}

	return stats, nil
}

// GetOverallStats aggregates across all batches.
func (s *IngestionService) GetOverallStats() (BatchStats, error) {
	var stats BatchStats
	var rows []statRow

	err := s.db.Model(&models.Transaction{}).
		Select("direction, COUNT(*) as count, COALESCE(SUM(amount),0) as sum").
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, r := range rows {
		stats.Total += r.Count
		stats.TotalAmount += r.Sum

		switch r.Direction {
		case string(parsing.DirectionDebit):
			stats.DebitCount = r.Count
			stats.DebitSum = r.Sum
		case string(parsing.DirectionCredit):
			stats.CreditCount = r.Count
			stats.CreditSum = r.Sum
		case string(parsing.DirectionUnknown):
			stats.UnknownCount = r.Count
			stats.UnknownSum = r.Sum
		}
	}

	return stats, nil
}

func (s *IngestionService) GetBatchStatsCache(batchID uuid.UUID) BatchStats {
	if val, ok := s.statsCache.Load(batchID); ok {
		return *val.(*BatchStats)
	}

	stats, err := s.GetBatchStats(batchID)
	if err != nil {
		return BatchStats{}
	}

	s.statsCache.Store(batchID, &stats)
	return stats
}

func (s *IngestionService) UpdateBatchProgressCache(batchID uuid.UUID, count int) {
	val, _ := s.progressCache.LoadOrStore(batchID, &Progress{
		ProcessedCount: 0,
		Total:          0,
		Status:         "processing",
	})
	p := val.(*Progress)
	p.ProcessedCount = count
	s.progressCache.Store(batchID, p)
}

// Mark completed
func (s *IngestionService) MarkBatchCompletedCache(batchID uuid.UUID, total int) {
	val, _ := s.progressCache.LoadOrStore(batchID, &Progress{})
	p := val.(*Progress)
	p.ProcessedCount = total
	p.Total = total
	p.Status = "completed"
	s.progressCache.Store(batchID, p)
}

// UpdateBatchProgress updates the processed count in a batch
func (s *IngestionService) UpdateBatchProgress(id uuid.UUID, count int) error {
	return s.db.Model(&models.IngestBatch{}).
		Where("id = ?", id).
		Update("processed_count", count).
		Error
}

// MarkBatchCompleted sets batch status to completed
func (s *IngestionService) MarkBatchCompleted(batchID uuid.UUID, total, parsed, rejected, duplicates int) error {
	return s.db.Model(&models.IngestBatch{}).
		Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"processed_count": total,
			"parsed_count":    parsed,
			"rejected_count":  rejected,
			"duplicate_count": duplicates,
			"status":          "completed",
			"completed_at":    time.Now(),
		}).Error
}

func (s *IngestionService) TransactionRepo() *repository.TransactionRepository {
	return s.transactionRepo
}

func (s *IngestionService) DB() *gorm.DB {
	return s.db
}
