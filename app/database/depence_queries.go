package database

import (
	"database/sql"
	"time"

	"github.com/khalidoy/gspfinanceback/app/models"
)

const depenceColumns = `id, type, description, date, amount`

func scanDepence(row interface{ Scan(...interface{}) error }) (*models.Depence, error) {
	d := &models.Depence{}
	if err := row.Scan(&d.ID, &d.Type, &d.Description, &d.Date, &d.Amount); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDepenceByID loads one expense entry with its fixed line items.
func GetDepenceByID(q Querier, id string) (*models.Depence, error) {
	row := q.QueryRow(`SELECT `+depenceColumns+` FROM depences WHERE id = $1`, id)
	d, err := scanDepence(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "Depence"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get depence", Err: err}
	}
	if err := loadFixedExpenses(q, d); err != nil {
		return nil, err
	}
	return d, nil
}

func loadFixedExpenses(q Querier, d *models.Depence) error {
	rows, err := q.Query(
		`SELECT expense_type, expense_amount FROM fixed_expenses WHERE depence_id = $1 ORDER BY id`,
		d.ID,
	)
	if err != nil {
		return &models.StorageError{Op: "load fixed expenses", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var fe models.FixedExpense
		if err := rows.Scan(&fe.ExpenseType, &fe.ExpenseAmount); err != nil {
			return &models.StorageError{Op: "scan fixed expense", Err: err}
		}
		d.FixedExpenses = append(d.FixedExpenses, fe)
	}
	return rows.Err()
}

// CreateDepence inserts an expense entry with its line items.
func CreateDepence(db *sql.DB, d *models.Depence) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "begin create depence", Err: err}
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO depences (type, description, date, amount) VALUES ($1, $2, $3, $4) RETURNING id`,
		d.Type, d.Description, d.Date, d.Amount,
	).Scan(&d.ID)
	if err != nil {
		return &models.StorageError{Op: "insert depence", Err: err}
	}
	if err := insertFixedExpenses(tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

func insertFixedExpenses(q Querier, d *models.Depence) error {
	for _, fe := range d.FixedExpenses {
		if _, err := q.Exec(
			`INSERT INTO fixed_expenses (depence_id, expense_type, expense_amount) VALUES ($1, $2, $3)`,
			d.ID, fe.ExpenseType, fe.ExpenseAmount,
		); err != nil {
			return &models.StorageError{Op: "insert fixed expense", Err: err}
		}
	}
	return nil
}

// UpdateDepence replaces an expense entry's fields and line items.
func UpdateDepence(db *sql.DB, d *models.Depence) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "begin update depence", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE depences SET type = $1, description = $2, date = $3, amount = $4 WHERE id = $5`,
		d.Type, d.Description, d.Date, d.Amount, d.ID,
	)
	if err != nil {
		return &models.StorageError{Op: "update depence", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Depence"}
	}
	if _, err := tx.Exec(`DELETE FROM fixed_expenses WHERE depence_id = $1`, d.ID); err != nil {
		return &models.StorageError{Op: "clear fixed expenses", Err: err}
	}
	if err := insertFixedExpenses(tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteDepence removes an expense entry; line items cascade.
func DeleteDepence(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM depences WHERE id = $1`, id)
	if err != nil {
		return &models.StorageError{Op: "delete depence", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Depence"}
	}
	return nil
}

// ListDepencesBetween returns expenses in [from, to), optionally filtered by
// type ("" means all). Line items are loaded for monthly entries.
func ListDepencesBetween(q Querier, from, to time.Time, depenceType string) ([]*models.Depence, error) {
	var rows *sql.Rows
	var err error
	if depenceType == "" {
		rows, err = q.Query(
			`SELECT `+depenceColumns+` FROM depences WHERE date >= $1 AND date < $2 ORDER BY date`,
			from, to,
		)
	} else {
		rows, err = q.Query(
			`SELECT `+depenceColumns+` FROM depences WHERE date >= $1 AND date < $2 AND type = $3 ORDER BY date`,
			from, to, depenceType,
		)
	}
	if err != nil {
		return nil, &models.StorageError{Op: "list depences", Err: err}
	}
	defer rows.Close()

	var depences []*models.Depence
	for rows.Next() {
		d, err := scanDepence(rows)
		if err != nil {
			return nil, &models.StorageError{Op: "scan depence", Err: err}
		}
		depences = append(depences, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list depences", Err: err}
	}

	for _, d := range depences {
		if d.Type == models.DepenceMonthly {
			if err := loadFixedExpenses(q, d); err != nil {
				return nil, err
			}
		}
	}
	return depences, nil
}

// GetMonthlyDepence finds the monthly expense sheet anchored at the first of
// the given month, if one exists.
func GetMonthlyDepence(q Querier, year int, month time.Month) (*models.Depence, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	row := q.QueryRow(
		`SELECT `+depenceColumns+` FROM depences WHERE type = 'monthly' AND date = $1`,
		monthStart,
	)
	d, err := scanDepence(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get monthly depence", Err: err}
	}
	if err := loadFixedExpenses(q, d); err != nil {
		return nil, err
	}
	return d, nil
}
