package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/query"
)

// CreateSettlement persists a settlement and its expense links.
func (s *Store) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if err := execSQL(ctx, tx, s.qb.InsertSettlement(settlement)); err != nil {
			return fmt.Errorf("insert settlement: %w", err)
		}
		if len(settlement.RelatedExpenseIDs) == 0 {
			return nil
		}
		if err := execSQL(ctx, tx, s.qb.InsertSettlementExpenses(settlement.ID, settlement.RelatedExpenseIDs)); err != nil {
			return fmt.Errorf("link settlement expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create settlement: %w", err)
	}
	return nil
}

// ListSettlements returns settlements matching the filter, newest first.
func (s *Store) ListSettlements(ctx context.Context, filter storage.SettlementFilter) ([]models.Settlement, error) {
	rows, err := s.queryRows(ctx, s.qb.SelectSettlements(filter))
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}

	var settlements []models.Settlement
	index := make(map[string]int)
	for rows.Next() {
		st, err := query.ScanSettlement(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		index[st.ID] = len(settlements)
		settlements = append(settlements, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlements: %w", err)
	}

	if len(settlements) == 0 {
		return nil, nil
	}

	ids := make([]string, len(settlements))
	for i, st := range settlements {
		ids[i] = st.ID
	}

	linkRows, err := s.queryRows(ctx, s.qb.SelectSettlementExpenses(ids))
	if err != nil {
		return nil, fmt.Errorf("query settlement expenses: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var settlementID, expenseID string
		if err := linkRows.Scan(&settlementID, &expenseID); err != nil {
			return nil, fmt.Errorf("scan settlement expense: %w", err)
		}
		if i, ok := index[settlementID]; ok {
			settlements[i].RelatedExpenseIDs = append(settlements[i].RelatedExpenseIDs, expenseID)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlement expenses: %w", err)
	}

	return settlements, nil
}
