package cartera

import "database/sql"

// AppendHistorical captures the current state of the main book into the
// historical ledger, one row per position per update cycle.
//
// The ledger keeps at most one row per (position, valuation date). A prior
// partial run can leave a stale capture at the ledger's newest date: any row
// sitting at that date is removed when its position already has a capture at
// or after the position's live valuation date, and the insert then takes the
// fresh snapshot for every position not yet covered. Both statements run in
// one transaction, so the ledger is never left half-updated, and re-running
// with unchanged data reproduces the exact same ledger.
func (s *Store) AppendHistorical() error {
	return s.withTx("append historical", func(tx *sql.Tx) error {
		if _, err := tx.Exec(historicalSchema); err != nil {
			return err
		}
		if _, err := tx.Exec(historicalDedup); err != nil {
			return err
		}
		_, err := tx.Exec(historicalInsert)
		return err
	})
}

// historicalDedup removes the stale capture of a prior cycle: rows at the
// ledger's newest valuation date, when that date belongs to positions that
// already have a row at or after their live valuation date.
const historicalDedup = `DELETE FROM historical
WHERE valuation_date = (
	SELECT MAX(valuation_date)
	FROM historical
	WHERE position_id IN (
		SELECT id
		FROM positions
		WHERE EXISTS (
			SELECT 1
			FROM historical
			WHERE position_id = positions.id AND valuation_date >= positions.valuation_date
		)
	)
)`

// historicalInsert snapshots every valued live position that has no ledger
// row at or after its current valuation date. A lot that has never been
// valued has nothing to capture yet.
const historicalInsert = `INSERT INTO historical (position_id, purchase_date, category, ticker, quantity, principal, current_value, valuation_date)
SELECT id, purchase_date, category, ticker, quantity, principal, current_value, valuation_date
FROM positions
WHERE valuation_date <> '' AND NOT EXISTS (
	SELECT 1
	FROM historical
	WHERE position_id = positions.id AND valuation_date >= positions.valuation_date
)`
