package cartera

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fgalarza/cartera/date"
)

// Book names one of the position tables. The main book is the empty name;
// mirror books (family members tracking the same funds) get their own table
// and receive the same valuation updates.
type Book string

// MainBook is the default position book.
const MainBook Book = ""

var bookNameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (b Book) table() string {
	if b == MainBook {
		return "positions"
	}
	return "positions_" + string(b)
}

// Store is the single-writer, file-backed record store: positions (one table
// per book), the historical snapshot ledger, and the inflation index.
type Store struct {
	db    *sql.DB
	books []Book
}

// Open opens (creating if needed) the database at path and ensures the
// schema for the main book, the given mirror books, the historical ledger
// and the inflation table.
func Open(path string, mirrors ...Book) (*Store, error) {
	for _, b := range mirrors {
		if !bookNameRE.MatchString(string(b)) {
			return nil, fmt.Errorf("invalid book name %q", b)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	s := &Store{db: db, books: append([]Book{MainBook}, mirrors...)}
	for _, b := range s.books {
		if _, err := db.Exec(positionsSchema(b)); err != nil {
			db.Close()
			return nil, storageErr("migrate", err)
		}
	}
	for _, stmt := range []string{historicalSchema, inflationSchema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, storageErr("migrate", err)
		}
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return storageErr("close", s.db.Close()) }

// Books returns the main book followed by the configured mirror books.
func (s *Store) Books() []Book { return s.books }

func positionsSchema(b Book) string {
	return `CREATE TABLE IF NOT EXISTS ` + b.table() + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	purchase_date TEXT NOT NULL,
	category TEXT NOT NULL,
	ticker TEXT NOT NULL,
	quantity TEXT NOT NULL,
	principal TEXT NOT NULL,
	current_value TEXT NOT NULL DEFAULT '0',
	valuation_date TEXT NOT NULL DEFAULT ''
)`
}

const historicalSchema = `CREATE TABLE IF NOT EXISTS historical (
	position_id INTEGER NOT NULL,
	purchase_date TEXT NOT NULL,
	category TEXT NOT NULL,
	ticker TEXT NOT NULL,
	quantity TEXT NOT NULL,
	principal TEXT NOT NULL,
	current_value TEXT NOT NULL,
	valuation_date TEXT NOT NULL
)`

const inflationSchema = `CREATE TABLE IF NOT EXISTS inflation (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	month TEXT NOT NULL UNIQUE,
	ref_value TEXT NOT NULL
)`

// withTx runs fn inside one transaction, committing on success and rolling
// back on any error or panic. Every batch operation goes through here so a
// commit or rollback can never be skipped on an early exit.
func (s *Store) withTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr(op, err)
	}
	defer tx.Rollback() // no-op after a successful commit
	if err := fn(tx); err != nil {
		if errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrDataUnavailable) {
			return err
		}
		return storageErr(op, err)
	}
	return storageErr(op, tx.Commit())
}

// ReadOption adjusts how positions and snapshots are read back.
type ReadOption func(*readOptions)

type readOptions struct {
	divisor decimal.Decimal
	since   date.Date
}

// WithDivisor scales down quantity and principal by n on read. Mirror books
// shared for display purposes keep scaled figures this way.
func WithDivisor(n int64) ReadOption {
	return func(o *readOptions) {
		if n > 1 {
			o.divisor = decimal.NewFromInt(n)
		}
	}
}

// Since keeps only rows with a valuation date strictly after the given day.
func Since(on date.Date) ReadOption {
	return func(o *readOptions) { o.since = on }
}

func newReadOptions(opts []ReadOption) readOptions {
	o := readOptions{divisor: decimal.NewFromInt(1)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const positionColumns = "id, purchase_date, category, ticker, quantity, principal, current_value, valuation_date"

// encodeDate serializes a date for storage. The zero date means "never
// valued" and becomes the schema's empty default, the form scanPosition
// reads back as a zero date.
func encodeDate(on date.Date) string {
	if on.IsZero() {
		return ""
	}
	return on.String()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPosition decodes one row, parsing the category label and the decimal
// and date fields once, at the store boundary.
func scanPosition(row rowScanner, o readOptions) (Position, error) {
	var p Position
	var category, quantity, principal, value, purchase, valuation string
	if err := row.Scan(&p.ID, &purchase, &category, &p.Ticker, &quantity, &principal, &value, &valuation); err != nil {
		return p, err
	}
	var err error
	if p.Category, err = ParseCategory(category); err != nil {
		return p, fmt.Errorf("position %d: %w", p.ID, err)
	}
	if p.PurchaseDate, err = date.Parse(purchase); err != nil {
		return p, fmt.Errorf("position %d: %w", p.ID, err)
	}
	if valuation != "" {
		if p.ValuationDate, err = date.Parse(valuation); err != nil {
			return p, fmt.Errorf("position %d: %w", p.ID, err)
		}
	}
	if p.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return p, fmt.Errorf("position %d: quantity: %w", p.ID, err)
	}
	if p.Principal, err = decimal.NewFromString(principal); err != nil {
		return p, fmt.Errorf("position %d: principal: %w", p.ID, err)
	}
	if p.CurrentValue, err = decimal.NewFromString(value); err != nil {
		return p, fmt.Errorf("position %d: current value: %w", p.ID, err)
	}
	if !o.divisor.Equal(decimal.NewFromInt(1)) {
		p.Quantity = p.Quantity.Div(o.divisor)
		p.Principal = p.Principal.Div(o.divisor)
	}
	return p, nil
}

// AddPosition inserts a new position into the given book and assigns its id.
func (s *Store) AddPosition(b Book, p *Position) error {
	return s.withTx("add position", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO "+b.table()+" (purchase_date, category, ticker, quantity, principal, current_value, valuation_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.PurchaseDate.String(), p.Category.Label(), p.Ticker,
			p.Quantity.String(), p.Principal.String(),
			p.CurrentValue.String(), encodeDate(p.ValuationDate),
		)
		if err != nil {
			return err
		}
		p.ID, err = res.LastInsertId()
		return err
	})
}

// UpdatePosition rewrites the user-editable fields of a position. Valuation
// fields belong to the updater and are left untouched.
func (s *Store) UpdatePosition(b Book, p Position) error {
	return s.withTx("update position", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE "+b.table()+" SET purchase_date = ?, category = ?, ticker = ?, quantity = ?, principal = ? WHERE id = ?",
			p.PurchaseDate.String(), p.Category.Label(), p.Ticker,
			p.Quantity.String(), p.Principal.String(), p.ID,
		)
		if err != nil {
			return err
		}
		return requireRow(res, p.ID)
	})
}

// DeletePosition removes a position from the given book.
func (s *Store) DeletePosition(b Book, id int64) error {
	return s.withTx("delete position", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM "+b.table()+" WHERE id = ?", id)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
}

// SetValuation writes a refreshed per-unit valuation and its as-of date.
func (s *Store) SetValuation(b Book, id int64, value decimal.Decimal, on date.Date) error {
	return s.withTx("set valuation", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE "+b.table()+" SET current_value = ?, valuation_date = ? WHERE id = ?",
			value.String(), on.String(), id,
		)
		if err != nil {
			return err
		}
		return requireRow(res, id)
	})
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Position returns one position by id.
func (s *Store) Position(b Book, id int64) (Position, error) {
	row := s.db.QueryRow("SELECT "+positionColumns+" FROM "+b.table()+" WHERE id = ?", id)
	p, err := scanPosition(row, newReadOptions(nil))
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("id %d: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return p, storageErr("read position", err)
	}
	return p, nil
}

// Positions returns all positions of a book, most recently valued first.
func (s *Store) Positions(b Book, opts ...ReadOption) ([]Position, error) {
	return s.queryPositions(
		"SELECT "+positionColumns+" FROM "+b.table()+" ORDER BY valuation_date DESC, id DESC",
		newReadOptions(opts),
	)
}

// PositionsByCategory returns the book's positions of one category.
func (s *Store) PositionsByCategory(b Book, c Category, opts ...ReadOption) ([]Position, error) {
	return s.queryPositions(
		"SELECT "+positionColumns+" FROM "+b.table()+" WHERE substr(category, 1, 1) = ? ORDER BY id",
		newReadOptions(opts),
		fmt.Sprintf("%d", int(c)),
	)
}

func (s *Store) queryPositions(query string, o readOptions, args ...any) ([]Position, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("read positions", err)
	}
	defer rows.Close()
	var positions []Position
	for rows.Next() {
		p, err := scanPosition(rows, o)
		if err != nil {
			return nil, storageErr("read positions", err)
		}
		positions = append(positions, p)
	}
	return positions, storageErr("read positions", rows.Err())
}

// Snapshots returns the historical ledger rows, oldest valuation first.
func (s *Store) Snapshots(opts ...ReadOption) ([]Snapshot, error) {
	o := newReadOptions(opts)
	query := "SELECT position_id, purchase_date, category, ticker, quantity, principal, current_value, valuation_date FROM historical"
	args := []any{}
	if !o.since.IsZero() {
		query += " WHERE valuation_date > ?"
		args = append(args, o.since.String())
	}
	query += " ORDER BY valuation_date, position_id"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("read historical", err)
	}
	defer rows.Close()
	var snaps []Snapshot
	for rows.Next() {
		p, err := scanPosition(rows, o)
		if err != nil {
			return nil, storageErr("read historical", err)
		}
		snaps = append(snaps, Snapshot{p})
	}
	return snaps, storageErr("read historical", rows.Err())
}
