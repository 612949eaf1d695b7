package repository

const termColumns = `term_code, description, start_date, end_date, academic_year, academic_year_description, financial_aid_year, housing_start_date, housing_end_date`

// currentTermQuery selects the term whose date range covers today.
const currentTermQuery = `SELECT term_code FROM terms WHERE CURRENT_DATE BETWEEN start_date AND end_date`

const listTermsQuery = `SELECT ` + termColumns + ` FROM terms ORDER BY term_code DESC`

const termByCodeQuery = `SELECT ` + termColumns + ` FROM terms WHERE term_code = $1`
