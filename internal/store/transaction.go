package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rnvv/igreja/internal/model"
)

type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func scanTransaction(scanner interface{ Scan(...any) error }) (*model.Transaction, error) {
	var t model.Transaction
	err := scanner.Scan(&t.ID, &t.ChurchID, &t.Type, &t.Description, &t.Amount, &t.Date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const transactionCols = `id, church_id, type, description, amount, date, created_at`

// Create inserts a ledger entry. The type must be entrada or saída and the
// amount must not be negative; direction is carried by the type alone.
func (s *TransactionStore) Create(t model.Transaction) (*model.Transaction, error) {
	if t.ChurchID == 0 {
		return nil, fmt.Errorf("church id is required")
	}
	if t.Type != model.TypeEntry && t.Type != model.TypeExit {
		return nil, fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}
	if t.Date == "" {
		return nil, fmt.Errorf("date is required")
	}

	result, err := s.db.Exec(
		`INSERT INTO transactions (church_id, type, description, amount, date)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ChurchID, t.Type, t.Description, t.Amount.String(), t.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TransactionStore) GetByID(id int64) (*model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListByChurch returns every transaction of the church, newest date first.
func (s *TransactionStore) ListByChurch(churchID int64) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT `+transactionCols+` FROM transactions WHERE church_id = ?
		 ORDER BY date DESC, id DESC`,
		churchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListRecent returns the most recent transactions by date, newest first.
func (s *TransactionStore) ListRecent(churchID int64, limit int) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT `+transactionCols+` FROM transactions WHERE church_id = ?
		 ORDER BY date DESC, id DESC LIMIT ?`,
		churchID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// Balance folds over all transactions of the church: entradas add, saídas
// subtract.
func (s *TransactionStore) Balance(churchID int64) (decimal.Decimal, error) {
	transactions, err := s.ListByChurch(churchID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: %w", err)
	}

	balance := decimal.Zero
	for _, t := range transactions {
		if t.Type == model.TypeEntry {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}
