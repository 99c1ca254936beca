package database

import (
	"database/sql"
	"fmt"

	"github.com/khalidoy/gspfinanceback/app/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so ledger loads can run
// inside or outside a transaction.
type Querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

const studentColumns = `id, name, school_year_id, is_new, is_left, joined_month, observations, left_date, class_id, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.SchoolYearID, &s.IsNew, &s.IsLeft,
		&s.JoinedMonth, &s.Observations, &s.LeftDate, &s.ClassID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudentByID loads a student and their ledger.
func GetStudentByID(q Querier, id string) (*models.Student, error) {
	row := q.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "Student"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get student", Err: err}
	}
	if err := loadLedger(q, s, false); err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudentWithLedgerForUpdate loads a student inside a transaction with the
// ledger rows locked, so concurrent reconciliation writes to the same student
// serialize instead of silently losing updates.
func GetStudentWithLedgerForUpdate(tx *sql.Tx, id string) (*models.Student, error) {
	row := tx.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1 FOR UPDATE`, id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "Student"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "lock student", Err: err}
	}
	if err := loadLedger(tx, s, true); err != nil {
		return nil, err
	}
	return s, nil
}

func loadLedger(q Querier, s *models.Student, forUpdate bool) error {
	query := `SELECT stream, month_slot, agreed_amount, real_amount FROM ledger_entries WHERE student_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(query, s.ID)
	if err != nil {
		return &models.StorageError{Op: "load ledger", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var stream string
		var slot int
		var agreed, real float64
		if err := rows.Scan(&stream, &slot, &agreed, &real); err != nil {
			return &models.StorageError{Op: "scan ledger row", Err: err}
		}
		applyLedgerRow(&s.Payments, models.Stream(stream), models.MonthSlot(slot), agreed, real)
	}
	return rows.Err()
}

func applyLedgerRow(l *models.Ledger, stream models.Stream, slot models.MonthSlot, agreed, real float64) {
	if stream == models.StreamInsurance {
		l.Agreed.Insurance = agreed
		l.Real.Insurance = real
		return
	}
	if !slot.Valid() {
		return
	}
	*l.Agreed.Slot(stream, slot) = agreed
	*l.Real.Slot(stream, slot) = real
}

// UpsertLedgerChanges writes only the touched ledger cells, one row per
// stream/slot pair.
func UpsertLedgerChanges(q Querier, studentID string, changes []models.LedgerChange, ledger *models.Ledger) error {
	// Dedupe to one upsert per (stream, slot); a change list can touch both
	// sides of the same cell.
	type cellKey struct {
		stream models.Stream
		slot   models.MonthSlot
	}
	cells := make(map[cellKey]struct{})
	for _, c := range changes {
		cells[cellKey{c.Stream, c.Slot}] = struct{}{}
	}

	query := `INSERT INTO ledger_entries (student_id, stream, month_slot, agreed_amount, real_amount)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (student_id, stream, month_slot)
			  DO UPDATE SET agreed_amount = EXCLUDED.agreed_amount, real_amount = EXCLUDED.real_amount`

	for cell := range cells {
		var agreed, real float64
		if cell.stream == models.StreamInsurance {
			agreed = ledger.Agreed.Insurance
			real = ledger.Real.Insurance
		} else {
			agreed = *ledger.Agreed.Slot(cell.stream, cell.slot)
			real = *ledger.Real.Slot(cell.stream, cell.slot)
		}
		if _, err := q.Exec(query, studentID, string(cell.stream), int(cell.slot), agreed, real); err != nil {
			return &models.StorageError{Op: "upsert ledger entry", Err: err}
		}
	}
	return nil
}

// SaveFullLedger writes every cell of a student's ledger. Used on student
// creation and full updates.
func SaveFullLedger(q Querier, studentID string, ledger *models.Ledger) error {
	query := `INSERT INTO ledger_entries (student_id, stream, month_slot, agreed_amount, real_amount)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (student_id, stream, month_slot)
			  DO UPDATE SET agreed_amount = EXCLUDED.agreed_amount, real_amount = EXCLUDED.real_amount`

	for _, slot := range models.SchoolYearSlots {
		if _, err := q.Exec(query, studentID, string(models.StreamTuition), int(slot),
			ledger.Agreed.Tuition[slot], ledger.Real.Tuition[slot]); err != nil {
			return &models.StorageError{Op: "save ledger", Err: err}
		}
		if _, err := q.Exec(query, studentID, string(models.StreamTransport), int(slot),
			ledger.Agreed.Transport[slot], ledger.Real.Transport[slot]); err != nil {
			return &models.StorageError{Op: "save ledger", Err: err}
		}
	}
	if _, err := q.Exec(query, studentID, string(models.StreamInsurance), 0,
		ledger.Agreed.Insurance, ledger.Real.Insurance); err != nil {
		return &models.StorageError{Op: "save ledger", Err: err}
	}
	return nil
}

// CreateStudent inserts a student and their initial ledger in one transaction.
func CreateStudent(db *sql.DB, s *models.Student) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "begin create student", Err: err}
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO students (name, school_year_id, is_new, is_left, joined_month, observations, left_date, class_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.SchoolYearID, s.IsNew, s.IsLeft, s.JoinedMonth, s.Observations, s.LeftDate, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return &models.StorageError{Op: "insert student", Err: err}
	}

	if err := SaveFullLedger(tx, s.ID, &s.Payments); err != nil {
		return err
	}
	return tx.Commit()
}

// ListStudentsByPeriod loads every student of a school-year period together
// with their ledgers in two queries.
func ListStudentsByPeriod(db *sql.DB, schoolYearID string) ([]*models.Student, error) {
	rows, err := db.Query(
		`SELECT `+studentColumns+` FROM students WHERE school_year_id = $1 ORDER BY name`,
		schoolYearID,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list students", Err: err}
	}
	defer rows.Close()

	var students []*models.Student
	byID := make(map[string]*models.Student)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, &models.StorageError{Op: "scan student", Err: err}
		}
		students = append(students, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list students", Err: err}
	}

	lrows, err := db.Query(
		`SELECT l.student_id, l.stream, l.month_slot, l.agreed_amount, l.real_amount
		 FROM ledger_entries l
		 JOIN students s ON s.id = l.student_id
		 WHERE s.school_year_id = $1`,
		schoolYearID,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list ledgers", Err: err}
	}
	defer lrows.Close()

	for lrows.Next() {
		var studentID, stream string
		var slot int
		var agreed, real float64
		if err := lrows.Scan(&studentID, &stream, &slot, &agreed, &real); err != nil {
			return nil, &models.StorageError{Op: "scan ledger row", Err: err}
		}
		if s, ok := byID[studentID]; ok {
			applyLedgerRow(&s.Payments, models.Stream(stream), models.MonthSlot(slot), agreed, real)
		}
	}
	return students, lrows.Err()
}

// UpdateStudent persists scalar field changes. The ledger is updated
// separately through UpsertLedgerChanges.
func UpdateStudent(q Querier, s *models.Student) error {
	res, err := q.Exec(
		`UPDATE students SET name = $1, joined_month = $2, observations = $3, class_id = $4, updated_at = NOW()
		 WHERE id = $5`,
		s.Name, s.JoinedMonth, s.Observations, s.ClassID, s.ID,
	)
	if err != nil {
		return &models.StorageError{Op: "update student", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Student"}
	}
	return nil
}

// FlagStudentLeft soft-deletes: the student keeps their ledger but stops
// appearing in arrears reports after the departure month.
func FlagStudentLeft(db *sql.DB, id string) (*models.Student, error) {
	s, err := GetStudentByID(db, id)
	if err != nil {
		return nil, err
	}
	if s.IsLeft {
		return nil, &models.ValidationError{Message: "Student is already flagged as left"}
	}
	row := db.QueryRow(
		`UPDATE students SET is_left = true, left_date = NOW(), updated_at = NOW() WHERE id = $1 RETURNING left_date`,
		id,
	)
	if err := row.Scan(&s.LeftDate); err != nil {
		return nil, &models.StorageError{Op: "flag student left", Err: err}
	}
	s.IsLeft = true
	return s, nil
}

// DeleteStudent hard-deletes a student and, via cascade, their ledger,
// payments and change log. Prefer FlagStudentLeft.
func DeleteStudent(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return &models.StorageError{Op: "delete student", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Student"}
	}
	return nil
}

// CountStudentsWithInsurance counts students of a period whose agreed
// insurance is positive.
func CountStudentsWithInsurance(db *sql.DB, schoolYearID string) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*)
		 FROM ledger_entries l
		 JOIN students s ON s.id = l.student_id
		 WHERE s.school_year_id = $1 AND l.stream = 'insurance' AND l.agreed_amount > 0`,
		schoolYearID,
	).Scan(&count)
	if err != nil {
		return 0, &models.StorageError{Op: "count insurance students", Err: err}
	}
	return count, nil
}

// ListUnknownAgreedStudents returns students of a period whose agreed tuition
// is zero for every month.
func ListUnknownAgreedStudents(db *sql.DB, schoolYearID string) ([]*models.Student, error) {
	rows, err := db.Query(fmt.Sprintf(
		`SELECT %s FROM students s
		 WHERE s.school_year_id = $1 AND s.is_left = false
		   AND NOT EXISTS (
			 SELECT 1 FROM ledger_entries l
			 WHERE l.student_id = s.id AND l.stream = 'tuition' AND l.agreed_amount > 0
		   )
		 ORDER BY s.name`, prefixedStudentColumns("s")),
		schoolYearID,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list unknown agreed students", Err: err}
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, &models.StorageError{Op: "scan student", Err: err}
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func prefixedStudentColumns(alias string) string {
	return fmt.Sprintf(
		"%[1]s.id, %[1]s.name, %[1]s.school_year_id, %[1]s.is_new, %[1]s.is_left, %[1]s.joined_month, %[1]s.observations, %[1]s.left_date, %[1]s.class_id, %[1]s.created_at, %[1]s.updated_at",
		alias,
	)
}
