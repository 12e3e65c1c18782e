package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const settlementColumns = `id, group_id, payer_id, receiver_id, amount_cents, status, note, created_at, settled_at`

// CreateSettlement persists a new pending settlement.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	cents, err := toCents(settlement.Amount)
	if err != nil {
		return fmt.Errorf("settlement: %w", err)
	}

	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	settlement.Status = models.SettlementPending
	settlement.SettledAt = 0

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, payer_id, receiver_id, amount_cents, status, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.PayerID, settlement.ReceiverID,
		cents, string(settlement.Status), nullString(settlement.Note), settlement.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("group %s, payer %s or receiver %s: %w",
			settlement.GroupID, settlement.PayerID, settlement.ReceiverID, storage.ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = ?`, settlementID)
	settlement, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// ConfirmSettlement moves a pending settlement to confirmed.
func (s *SQLiteStore) ConfirmSettlement(ctx context.Context, settlementID string, settledAt int64) (*models.Settlement, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements SET status = ?, settled_at = ? WHERE id = ? AND status = ?`,
		string(models.SettlementConfirmed), settledAt, settlementID, string(models.SettlementPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to confirm settlement: %w", err)
	}

	settlement, err := s.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("settlement %s is %s: %w", settlementID, settlement.Status, storage.ErrInvalidState)
	}
	return settlement, nil
}

func scanSettlement(row scanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var cents int64
	var status string
	var note sql.NullString
	var settled sql.NullInt64
	err := row.Scan(&settlement.ID, &settlement.GroupID, &settlement.PayerID, &settlement.ReceiverID,
		&cents, &status, &note, &settlement.CreatedAt, &settled)
	if err != nil {
		return nil, err
	}
	settlement.Amount = fromCents(cents)
	settlement.Status = models.SettlementStatus(status)
	if note.Valid {
		settlement.Note = note.String
	}
	if settled.Valid {
		settlement.SettledAt = settled.Int64
	}
	return settlement, nil
}
