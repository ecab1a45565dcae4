package cartera

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// AddInflation inserts a monthly index record and assigns its id. The month
// is normalized to its first day; one record may exist per month.
func (s *Store) AddInflation(r *InflationRecord) error {
	return s.withTx("add inflation", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO inflation (month, ref_value) VALUES (?, ?)",
			r.Month.FirstOfMonth().String(), r.RefValue.String(),
		)
		if err != nil {
			return err
		}
		r.Month = r.Month.FirstOfMonth()
		r.ID, err = res.LastInsertId()
		return err
	})
}

// UpdateInflation rewrites one index record.
func (s *Store) UpdateInflation(r InflationRecord) error {
	return s.withTx("update inflation", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE inflation SET month = ?, ref_value = ? WHERE id = ?",
			r.Month.FirstOfMonth().String(), r.RefValue.String(), r.ID,
		)
		if err != nil {
			return err
		}
		return requireRow(res, r.ID)
	})
}

// DeleteInflation removes one index record.
func (s *Store) DeleteInflation(id int64) error {
	return s.withTx("delete inflation", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM inflation WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
}

// InflationRecords returns the full index series in ascending month order,
// the order every derived rate assumes.
func (s *Store) InflationRecords() ([]InflationRecord, error) {
	rows, err := s.db.Query("SELECT id, month, ref_value FROM inflation ORDER BY month")
	if err != nil {
		return nil, storageErr("read inflation", err)
	}
	defer rows.Close()
	var records []InflationRecord
	for rows.Next() {
		var r InflationRecord
		var month, value string
		if err := rows.Scan(&r.ID, &month, &value); err != nil {
			return nil, storageErr("read inflation", err)
		}
		if r.Month, err = date.Parse(month); err != nil {
			return nil, storageErr("read inflation", fmt.Errorf("record %d: %w", r.ID, err))
		}
		if r.RefValue, err = decimal.NewFromString(value); err != nil {
			return nil, storageErr("read inflation", fmt.Errorf("record %d: %w", r.ID, err))
		}
		records = append(records, r)
	}
	return records, storageErr("read inflation", rows.Err())
}

// InflationRecord returns one index record by id.
func (s *Store) InflationRecord(id int64) (InflationRecord, error) {
	records, err := s.InflationRecords()
	if err != nil {
		return InflationRecord{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return InflationRecord{}, fmt.Errorf("id %d: %w", id, ErrRecordNotFound)
}
