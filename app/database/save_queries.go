package database

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/khalidoy/gspfinanceback/app/models"
)

// InsertSave appends a change-log record. Callers run this fire-and-forget;
// a failure here must never fail the write it describes.
func InsertSave(db *sql.DB, s *models.Save) error {
	changes, err := json.Marshal(s.Changes)
	if err != nil {
		return err
	}
	err = db.QueryRow(
		`INSERT INTO saves (student_id, user_id, date, types, changes)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.StudentID, nullString(s.UserID), s.Date, pq.Array(s.Types), changes,
	).Scan(&s.ID)
	if err != nil {
		return &models.StorageError{Op: "insert save", Err: err}
	}
	return nil
}

// ListSavesByStudent returns a student's change log, newest first.
func ListSavesByStudent(db *sql.DB, studentID string) ([]*models.Save, error) {
	rows, err := db.Query(
		`SELECT id, student_id, user_id, date, types, changes FROM saves
		 WHERE student_id = $1 ORDER BY date DESC`,
		studentID,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list saves", Err: err}
	}
	defer rows.Close()

	var saves []*models.Save
	for rows.Next() {
		s := &models.Save{}
		var userID sql.NullString
		var changes []byte
		if err := rows.Scan(&s.ID, &s.StudentID, &userID, &s.Date, pq.Array(&s.Types), &changes); err != nil {
			return nil, &models.StorageError{Op: "scan save", Err: err}
		}
		s.UserID = userID.String
		if err := json.Unmarshal(changes, &s.Changes); err != nil {
			return nil, &models.StorageError{Op: "decode save changes", Err: err}
		}
		saves = append(saves, s)
	}
	return saves, rows.Err()
}
