package database

import (
	"database/sql"
	"log"
)

// EnsureSchema creates the finance tables if they don't exist and applies
// incremental column/index migrations. Safe to run on every startup.
func EnsureSchema(db *sql.DB) error {
	log.Println("Running database migrations...")

	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS school_year_periods (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			class_order INT NOT NULL DEFAULT 999
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			school_year_id UUID NOT NULL REFERENCES school_year_periods(id) ON DELETE CASCADE,
			is_new BOOLEAN NOT NULL DEFAULT false,
			is_left BOOLEAN NOT NULL DEFAULT false,
			joined_month INT NOT NULL DEFAULT 9 CHECK (joined_month BETWEEN 1 AND 12),
			observations TEXT NOT NULL DEFAULT '',
			left_date TIMESTAMP WITH TIME ZONE,
			class_id UUID REFERENCES classes(id) ON DELETE SET NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			stream VARCHAR(12) NOT NULL CHECK (stream IN ('tuition', 'transport', 'insurance')),
			month_slot SMALLINT NOT NULL CHECK (month_slot BETWEEN 0 AND 9),
			agreed_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			real_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (student_id, stream, month_slot)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			amount DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
			payment_type VARCHAR(32) NOT NULL,
			month INT CHECK (month BETWEEN 1 AND 12)
		)`,
		`CREATE TABLE IF NOT EXISTS depences (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			type VARCHAR(16) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TIMESTAMP WITH TIME ZONE NOT NULL,
			amount DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS fixed_expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			depence_id UUID NOT NULL REFERENCES depences(id) ON DELETE CASCADE,
			expense_type VARCHAR(255) NOT NULL,
			expense_amount DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS daily_accounting (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			date DATE UNIQUE NOT NULL,
			total_payments DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_expenses DOUBLE PRECISION NOT NULL DEFAULT 0,
			net_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_validated BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS daily_accounting_payments (
			accounting_id UUID NOT NULL REFERENCES daily_accounting(id) ON DELETE CASCADE,
			payment_id UUID NOT NULL REFERENCES payments(id) ON DELETE CASCADE,
			PRIMARY KEY (accounting_id, payment_id)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_accounting_depences (
			accounting_id UUID NOT NULL REFERENCES daily_accounting(id) ON DELETE CASCADE,
			depence_id UUID NOT NULL REFERENCES depences(id) ON DELETE CASCADE,
			PRIMARY KEY (accounting_id, depence_id)
		)`,
		`CREATE TABLE IF NOT EXISTS saves (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			types TEXT[] NOT NULL,
			changes JSONB NOT NULL
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Failed to create table: %v", err)
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_students_school_year ON students(school_year_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_name ON students(name)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student ON payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_type ON payments(payment_type)`,
		`CREATE INDEX IF NOT EXISTS idx_depences_date ON depences(date)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_student ON saves(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_date ON saves(date)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Failed to run index migration: %v", err)
			// Continue as some might be duplicate index errors depending on PG version
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
