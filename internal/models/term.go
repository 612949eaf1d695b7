package models

import (
	"database/sql"
	"time"
)

// Term models one academic term row as read from the registrar tables.
type Term struct {
	TermCode                string         `db:"term_code"`
	Description             string         `db:"description"`
	StartDate               *time.Time     `db:"start_date"`
	EndDate                 *time.Time     `db:"end_date"`
	AcademicYear            sql.NullString `db:"academic_year"`
	AcademicYearDescription sql.NullString `db:"academic_year_description"`
	FinancialAidYear        sql.NullString `db:"financial_aid_year"`
	HousingStartDate        *time.Time     `db:"housing_start_date"`
	HousingEndDate          *time.Time     `db:"housing_end_date"`
}

// CurrentTerm is the single row produced by the current term lookup.
type CurrentTerm struct {
	TermCode sql.NullString `db:"term_code"`
}
