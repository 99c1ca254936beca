package database

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/khalidoy/gspfinanceback/app/models"
)

// GetDailyAccountingForDate loads the close-out record for a calendar day.
// Returns nil when the day has never been snapshotted. When called with a
// transaction the row is locked so concurrent validations serialize.
func GetDailyAccountingForDate(q Querier, day time.Time, forUpdate bool) (*models.DailyAccounting, error) {
	query := `SELECT id, date, total_payments, total_expenses, net_profit, is_validated
			  FROM daily_accounting WHERE date = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec := &models.DailyAccounting{}
	err := q.QueryRow(query, day.Format("2006-01-02")).Scan(
		&rec.ID, &rec.Date, &rec.TotalPayments, &rec.TotalExpenses, &rec.NetProfit, &rec.IsValidated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get daily accounting", Err: err}
	}

	if rec.PaymentIDs, err = listAccountingRefs(q, `SELECT payment_id FROM daily_accounting_payments WHERE accounting_id = $1`, rec.ID); err != nil {
		return nil, err
	}
	if rec.DepenceIDs, err = listAccountingRefs(q, `SELECT depence_id FROM daily_accounting_depences WHERE accounting_id = $1`, rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

func listAccountingRefs(q Querier, query, accountingID string) ([]string, error) {
	rows, err := q.Query(query, accountingID)
	if err != nil {
		return nil, &models.StorageError{Op: "list accounting refs", Err: err}
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &models.StorageError{Op: "scan accounting ref", Err: err}
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertDailyAccounting writes the snapshot and replaces its payment/depence
// reference lists.
func UpsertDailyAccounting(q Querier, rec *models.DailyAccounting) error {
	err := q.QueryRow(
		`INSERT INTO daily_accounting (date, total_payments, total_expenses, net_profit, is_validated)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (date) DO UPDATE SET
			total_payments = EXCLUDED.total_payments,
			total_expenses = EXCLUDED.total_expenses,
			net_profit = EXCLUDED.net_profit,
			is_validated = EXCLUDED.is_validated
		 RETURNING id`,
		rec.Date.Format("2006-01-02"), rec.TotalPayments, rec.TotalExpenses, rec.NetProfit, rec.IsValidated,
	).Scan(&rec.ID)
	if err != nil {
		return &models.StorageError{Op: "upsert daily accounting", Err: err}
	}

	if _, err := q.Exec(`DELETE FROM daily_accounting_payments WHERE accounting_id = $1`, rec.ID); err != nil {
		return &models.StorageError{Op: "clear accounting payments", Err: err}
	}
	for _, pid := range rec.PaymentIDs {
		if _, err := q.Exec(
			`INSERT INTO daily_accounting_payments (accounting_id, payment_id) VALUES ($1, $2)`,
			rec.ID, pid,
		); err != nil {
			return &models.StorageError{Op: "link accounting payment", Err: err}
		}
	}

	if _, err := q.Exec(`DELETE FROM daily_accounting_depences WHERE accounting_id = $1`, rec.ID); err != nil {
		return &models.StorageError{Op: "clear accounting depences", Err: err}
	}
	for _, did := range rec.DepenceIDs {
		if _, err := q.Exec(
			`INSERT INTO daily_accounting_depences (accounting_id, depence_id) VALUES ($1, $2)`,
			rec.ID, did,
		); err != nil {
			return &models.StorageError{Op: "link accounting depence", Err: err}
		}
	}
	return nil
}

// ListDailyAccountingRange returns close-out records with date in
// [from, to], oldest first.
func ListDailyAccountingRange(db *sql.DB, from, to time.Time) ([]*models.DailyAccounting, error) {
	rows, err := db.Query(
		`SELECT id, date, total_payments, total_expenses, net_profit, is_validated
		 FROM daily_accounting WHERE date >= $1 AND date <= $2 ORDER BY date`,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list daily accounting", Err: err}
	}
	defer rows.Close()

	var records []*models.DailyAccounting
	ids := []string{}
	byID := make(map[string]*models.DailyAccounting)
	for rows.Next() {
		rec := &models.DailyAccounting{}
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.TotalPayments, &rec.TotalExpenses, &rec.NetProfit, &rec.IsValidated); err != nil {
			return nil, &models.StorageError{Op: "scan daily accounting", Err: err}
		}
		records = append(records, rec)
		ids = append(ids, rec.ID)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list daily accounting", Err: err}
	}
	if len(records) == 0 {
		return records, nil
	}

	prows, err := db.Query(
		`SELECT accounting_id, payment_id FROM daily_accounting_payments WHERE accounting_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list accounting payments", Err: err}
	}
	defer prows.Close()
	for prows.Next() {
		var accID, pid string
		if err := prows.Scan(&accID, &pid); err != nil {
			return nil, &models.StorageError{Op: "scan accounting payment", Err: err}
		}
		byID[accID].PaymentIDs = append(byID[accID].PaymentIDs, pid)
	}

	drows, err := db.Query(
		`SELECT accounting_id, depence_id FROM daily_accounting_depences WHERE accounting_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list accounting depences", Err: err}
	}
	defer drows.Close()
	for drows.Next() {
		var accID, did string
		if err := drows.Scan(&accID, &did); err != nil {
			return nil, &models.StorageError{Op: "scan accounting depence", Err: err}
		}
		byID[accID].DepenceIDs = append(byID[accID].DepenceIDs, did)
	}
	return records, nil
}

// GetPaymentsByIDs loads payment rows with student names for report details.
func GetPaymentsByIDs(db *sql.DB, ids []string) ([]*models.Payment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.Query(
		`SELECT p.id, p.student_id, p.user_id, p.date, p.amount, p.payment_type, p.month, s.name
		 FROM payments p JOIN students s ON s.id = p.student_id
		 WHERE p.id = ANY($1) ORDER BY p.date`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, &models.StorageError{Op: "get payments by ids", Err: err}
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var userID sql.NullString
		if err := rows.Scan(&p.ID, &p.StudentID, &userID, &p.Date, &p.Amount, &p.PaymentType, &p.Month, &p.StudentName); err != nil {
			return nil, &models.StorageError{Op: "scan payment", Err: err}
		}
		p.UserID = userID.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetDepencesByIDs loads depence rows for report details.
func GetDepencesByIDs(db *sql.DB, ids []string) ([]*models.Depence, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.Query(
		`SELECT `+depenceColumns+` FROM depences WHERE id = ANY($1) ORDER BY date`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, &models.StorageError{Op: "get depences by ids", Err: err}
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
	return depences, rows.Err()
}
