package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sms-transaction-backend/internal/models"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Expose DB if needed
func (r *TransactionRepository) DB() *gorm.DB {
	return r.db
}

// InsertIgnoringDuplicates persists a parsed record; a conflicting
// reference id (already stored from an earlier batch) is dropped
// silently. Returns whether a row was actually written.
func (r *TransactionRepository) InsertIgnoringDuplicates(tx *models.Transaction) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(tx)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByID fetch a single transaction by ID
func (r *TransactionRepository) GetByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindByReferenceID returns the stored transaction for a reference id
func (r *TransactionRepository) FindByReferenceID(ref string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.First(&tx, "reference_id = ?", ref).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// SearchTransactions used for admin manual search with optional filters
func (r *TransactionRepository) SearchTransactions(query string, direction string, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction

	dbQuery := r.db.Model(&models.Transaction{}).Order("transaction_at DESC").Limit(limit)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(merchant) LIKE ? OR LOWER(body) LIKE ? OR reference_id LIKE ?",
			like, like, "%"+query+"%",
		)
	}
	if direction != "" {
		dbQuery = dbQuery.Where("direction = ?", direction)
	}

	err := dbQuery.Find(&txs).Error
	return txs, err
}

// Recent returns the newest transactions across all batches.
func (r *TransactionRepository) Recent(limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Order("transaction_at DESC, message_id DESC").Limit(limit).Find(&txs).Error
	return txs, err
}
