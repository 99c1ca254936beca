package services

import (
	"database/sql"
	"time"

	"github.com/khalidoy/gspfinanceback/app/database"
	"github.com/khalidoy/gspfinanceback/app/models"
)

// UpdateStudent persists profile edits and, when newLedger is non-nil, a full
// ledger overwrite. Ledger overwrites are contract corrections from the office
// screen; they bypass propagation, like agreed_changes. Cell diffs are
// appended to the change log.
func UpdateStudent(db *sql.DB, userID string, student *models.Student, newLedger *models.Ledger) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "begin student update", Err: err}
	}
	defer tx.Rollback()

	var changes []models.LedgerChange
	if newLedger != nil {
		changes = newLedger.DiffFrom(&student.Payments)
		student.Payments = *newLedger
		if err := database.SaveFullLedger(tx, student.ID, newLedger); err != nil {
			return err
		}
	}
	if err := database.UpdateStudent(tx, student); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "commit student update", Err: err}
	}

	if len(changes) > 0 {
		save := &models.Save{
			StudentID: student.ID,
			UserID:    userID,
			Date:      time.Now(),
			Types:     []string{"update"},
		}
		for _, c := range changes {
			save.Changes = append(save.Changes, models.ChangeDetail{
				FieldName: c.FieldName(),
				OldValue:  formatAmount(c.Old),
				NewValue:  formatAmount(c.New),
			})
		}
		go func() {
			if err := database.InsertSave(db, save); err != nil {
				logSaveFailure(student.ID, err)
			}
		}()
	}
	return nil
}
