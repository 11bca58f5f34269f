package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := execSQL(ctx, tx, s.qb.InsertExpense(expense)); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		if len(expense.Splits) == 0 {
			return nil
		}
		if err := execSQL(ctx, tx, s.qb.InsertSplits(expense.ID, expense.Splits)); err != nil {
			return fmt.Errorf("failed to insert splits: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expenses, err := s.listExpenses(ctx, s.qb.SelectExpenses(storage.ExpenseFilter{}).Where(sq.Eq{"id": expenseID}))
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, models.NotFound("expense", expenseID)
	}
	return &expenses[0], nil
}

// ListExpenses returns expenses matching the filter, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]models.Expense, error) {
	return s.listExpenses(ctx, s.qb.SelectExpenses(filter))
}

func (s *SQLiteStore) listExpenses(ctx context.Context, q sq.Sqlizer) ([]models.Expense, error) {
	rows, err := s.queryRows(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		e, err := query.ScanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	rows.Close()

	if len(expenses) == 0 {
		return nil, nil
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	splitRows, err := s.queryRows(ctx, s.qb.SelectSplits(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		expenseID, split, err := query.ScanSplit(splitRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating splits: %w", err)
	}

	return expenses, nil
}
