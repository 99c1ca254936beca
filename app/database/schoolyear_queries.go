package database

import (
	"database/sql"

	"github.com/khalidoy/gspfinanceback/app/models"
)

const schoolYearColumns = `id, name, start_date, end_date`

func scanSchoolYear(row interface{ Scan(...interface{}) error }) (*models.SchoolYearPeriod, error) {
	p := &models.SchoolYearPeriod{}
	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate); err != nil {
		return nil, err
	}
	return p, nil
}

// GetSchoolYearByID loads one school-year period.
func GetSchoolYearByID(q Querier, id string) (*models.SchoolYearPeriod, error) {
	row := q.QueryRow(`SELECT `+schoolYearColumns+` FROM school_year_periods WHERE id = $1`, id)
	p, err := scanSchoolYear(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "School Year Period"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get school year", Err: err}
	}
	return p, nil
}

// ListSchoolYears returns all periods, newest first.
func ListSchoolYears(db *sql.DB) ([]*models.SchoolYearPeriod, error) {
	rows, err := db.Query(`SELECT ` + schoolYearColumns + ` FROM school_year_periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, &models.StorageError{Op: "list school years", Err: err}
	}
	defer rows.Close()

	var periods []*models.SchoolYearPeriod
	for rows.Next() {
		p, err := scanSchoolYear(rows)
		if err != nil {
			return nil, &models.StorageError{Op: "scan school year", Err: err}
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// CreateSchoolYearWithRollover creates a period and duplicates the active
// students of the most recent previous period into it with zeroed ledgers.
// Returns the number of students duplicated.
func CreateSchoolYearWithRollover(db *sql.DB, p *models.SchoolYearPeriod) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, &models.StorageError{Op: "begin create school year", Err: err}
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO school_year_periods (name, start_date, end_date) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.StartDate, p.EndDate,
	).Scan(&p.ID)
	if err != nil {
		return 0, &models.StorageError{Op: "insert school year", Err: err}
	}

	// Most recent period that ended before this one starts.
	prevRow := tx.QueryRow(
		`SELECT `+schoolYearColumns+` FROM school_year_periods
		 WHERE end_date < $1 ORDER BY end_date DESC LIMIT 1`,
		p.StartDate,
	)
	prev, err := scanSchoolYear(prevRow)
	if err == sql.ErrNoRows {
		return 0, tx.Commit()
	}
	if err != nil {
		return 0, &models.StorageError{Op: "find previous school year", Err: err}
	}

	// Copy active students into the new year; new students get fresh,
	// all-zero ledgers created lazily on first payment.
	rows, err := tx.Query(
		`SELECT name, joined_month, observations, class_id FROM students
		 WHERE school_year_id = $1 AND is_left = false`,
		prev.ID,
	)
	if err != nil {
		return 0, &models.StorageError{Op: "list previous students", Err: err}
	}
	type carry struct {
		name         string
		joinedMonth  int
		observations string
		classID      *string
	}
	var carried []carry
	for rows.Next() {
		var c carry
		if err := rows.Scan(&c.name, &c.joinedMonth, &c.observations, &c.classID); err != nil {
			rows.Close()
			return 0, &models.StorageError{Op: "scan previous student", Err: err}
		}
		carried = append(carried, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, &models.StorageError{Op: "list previous students", Err: err}
	}

	for _, c := range carried {
		var newID string
		err := tx.QueryRow(
			`INSERT INTO students (name, school_year_id, is_new, is_left, joined_month, observations, class_id)
			 VALUES ($1, $2, false, false, $3, $4, $5) RETURNING id`,
			c.name, p.ID, c.joinedMonth, c.observations, c.classID,
		).Scan(&newID)
		if err != nil {
			return 0, &models.StorageError{Op: "duplicate student", Err: err}
		}
		if err := SaveFullLedger(tx, newID, &models.Ledger{}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &models.StorageError{Op: "commit school year rollover", Err: err}
	}
	return len(carried), nil
}

// UpdateSchoolYear persists name/date changes.
func UpdateSchoolYear(db *sql.DB, p *models.SchoolYearPeriod) error {
	res, err := db.Exec(
		`UPDATE school_year_periods SET name = $1, start_date = $2, end_date = $3 WHERE id = $4`,
		p.Name, p.StartDate, p.EndDate, p.ID,
	)
	if err != nil {
		return &models.StorageError{Op: "update school year", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "School Year Period"}
	}
	return nil
}

// DeleteSchoolYear removes a period; its students cascade.
func DeleteSchoolYear(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM school_year_periods WHERE id = $1`, id)
	if err != nil {
		return &models.StorageError{Op: "delete school year", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "School Year Period"}
	}
	return nil
}
