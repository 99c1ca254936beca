package database

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/khalidoy/gspfinanceback/app/models"
)

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

// ListClasses returns all classes in display order.
func ListClasses(db *sql.DB) ([]*models.Class, error) {
	rows, err := db.Query(`SELECT id, name, class_order FROM classes ORDER BY class_order, name`)
	if err != nil {
		return nil, &models.StorageError{Op: "list classes", Err: err}
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Order); err != nil {
			return nil, &models.StorageError{Op: "scan class", Err: err}
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetClassByID loads one class.
func GetClassByID(db *sql.DB, id string) (*models.Class, error) {
	c := &models.Class{}
	err := db.QueryRow(`SELECT id, name, class_order FROM classes WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Order)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Resource: "Class"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get class", Err: err}
	}
	return c, nil
}

// CreateClass inserts a class; names are unique.
func CreateClass(db *sql.DB, c *models.Class) error {
	err := db.QueryRow(
		`INSERT INTO classes (name, class_order) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Order,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &models.ValidationError{Message: "Class name must be unique"}
		}
		return &models.StorageError{Op: "create class", Err: err}
	}
	return nil
}

// UpdateClass persists name/order changes.
func UpdateClass(db *sql.DB, c *models.Class) error {
	res, err := db.Exec(
		`UPDATE classes SET name = $1, class_order = $2 WHERE id = $3`,
		c.Name, c.Order, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &models.ValidationError{Message: "Class name must be unique"}
		}
		return &models.StorageError{Op: "update class", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Class"}
	}
	return nil
}

// DeleteClass removes a class; students keep a NULL class reference.
func DeleteClass(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return &models.StorageError{Op: "delete class", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Resource: "Class"}
	}
	return nil
}
