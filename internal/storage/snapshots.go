package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/common"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
)

// SaveSnapshot persists a loaded record set atomically and returns the new
// load id. Absent amounts and dates are stored as NULL so a round trip
// preserves the absent-vs-zero distinction.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, source string, loadedAt time.Time, records []model.AccountRecord) (int64, error) {
	if len(records) == 0 {
		return 0, common.ErrNoRecords
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO loads (source, loaded_at, record_count) VALUES (?, ?, ?)`,
		source, loadedAt.UTC(), len(records))
	if err != nil {
		return 0, fmt.Errorf("failed to insert load: %w", err)
	}
	loadID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read load id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			load_id, document, company_name, campaign, advisor, priority,
			contactability, operator, total_debt, admin_fee, rec_planillas,
			rec_gastos, planillas_paid_at, gastos_paid_at, last_action_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			loadID, r.Document, r.CompanyName, r.Campaign, r.Advisor,
			r.Priority, r.Contactability, r.Operator,
			nullAmount(r.TotalDebt), nullAmount(r.AdminFee),
			nullAmount(r.RecPlanillas), nullAmount(r.RecGastos),
			nullTime(r.PlanillasPaidAt), nullTime(r.GastosPaidAt),
			nullTime(r.LastActionAt))
		if err != nil {
			return 0, fmt.Errorf("failed to insert record %s: %w", r.Document, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return loadID, nil
}

// LatestSnapshot returns the most recent snapshot and its records.
func (s *SnapshotStore) LatestSnapshot(ctx context.Context) (*LoadInfo, []model.AccountRecord, error) {
	info := &LoadInfo{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, loaded_at, record_count FROM loads ORDER BY id DESC LIMIT 1`).
		Scan(&info.ID, &info.Source, &info.LoadedAt, &info.RecordCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, common.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest load: %w", err)
	}

	records, err := s.snapshotRecords(ctx, info.ID)
	if err != nil {
		return nil, nil, err
	}
	return info, records, nil
}

// ListSnapshots returns snapshot metadata, newest first.
func (s *SnapshotStore) ListSnapshots(ctx context.Context) ([]LoadInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, loaded_at, record_count FROM loads ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list loads: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var infos []LoadInfo
	for rows.Next() {
		var info LoadInfo
		if err := rows.Scan(&info.ID, &info.Source, &info.LoadedAt, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *SnapshotStore) snapshotRecords(ctx context.Context, loadID int64) ([]model.AccountRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document, company_name, campaign, advisor, priority,
			contactability, operator, total_debt, admin_fee, rec_planillas,
			rec_gastos, planillas_paid_at, gastos_paid_at, last_action_at
		FROM records WHERE load_id = ? ORDER BY id`, loadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []model.AccountRecord
	for rows.Next() {
		var (
			r                                 model.AccountRecord
			debt, fee, planillas, gastos      sql.NullFloat64
			planillasAt, gastosAt, lastAction sql.NullTime
		)
		err := rows.Scan(&r.Document, &r.CompanyName, &r.Campaign, &r.Advisor,
			&r.Priority, &r.Contactability, &r.Operator,
			&debt, &fee, &planillas, &gastos,
			&planillasAt, &gastosAt, &lastAction)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		r.TotalDebt = amountFromNull(debt)
		r.AdminFee = amountFromNull(fee)
		r.RecPlanillas = amountFromNull(planillas)
		r.RecGastos = amountFromNull(gastos)
		r.PlanillasPaidAt = timeFromNull(planillasAt)
		r.GastosPaidAt = timeFromNull(gastosAt)
		r.LastActionAt = timeFromNull(lastAction)
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullAmount(a model.Amount) sql.NullFloat64 {
	if !a.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: a.Value.InexactFloat64(), Valid: true}
}

func amountFromNull(n sql.NullFloat64) model.Amount {
	if !n.Valid {
		return model.Amount{}
	}
	return model.AmountFromFloat(n.Float64)
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timeFromNull(n sql.NullTime) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return n.Time.UTC()
}
