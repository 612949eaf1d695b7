package serializer

import (
	"database/sql"
	"time"

	"github.com/noah-isme/terms-api/internal/models"
)

const (
	termResourceType = "term"
	dateLayout       = "2006-01-02"
)

// Term status relative to the current term.
const (
	StatusCurrent = "current"
	StatusPast    = "past"
	StatusFuture  = "future"
)

// Links carries resource navigation links.
type Links struct {
	Self string `json:"self"`
}

// TermAttributes is the public representation of a term row.
type TermAttributes struct {
	TermCode                string  `json:"termCode"`
	Description             string  `json:"description"`
	StartDate               *string `json:"startDate"`
	EndDate                 *string `json:"endDate"`
	AcademicYear            *string `json:"academicYear"`
	AcademicYearDescription *string `json:"academicYearDescription"`
	FinancialAidYear        *string `json:"financialAidYear"`
	HousingStartDate        *string `json:"housingStartDate"`
	HousingEndDate          *string `json:"housingEndDate"`
	Status                  string  `json:"status"`
}

// TermResource is a single serialized term.
type TermResource struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes TermAttributes `json:"attributes"`
	Links      Links          `json:"links"`
}

// TermDocument is the top-level document for one term.
type TermDocument struct {
	Data  TermResource `json:"data"`
	Links Links        `json:"links"`
}

// TermCollection is the top-level document for a list of terms.
type TermCollection struct {
	Data  []TermResource `json:"data"`
	Links Links          `json:"links"`
}

// NewTermDocument wraps resource so single terms share the collection's shape.
func NewTermDocument(resource *TermResource) *TermDocument {
	if resource == nil {
		return nil
	}
	return &TermDocument{Data: *resource, Links: resource.Links}
}

// TermSerializer builds term resources with links rooted at baseURL.
type TermSerializer struct {
	baseURL string
}

// NewTermSerializer creates a serializer; baseURL should not end in a slash.
func NewTermSerializer(baseURL string) *TermSerializer {
	return &TermSerializer{baseURL: baseURL}
}

// SerializeTerm converts one row.
func (s *TermSerializer) SerializeTerm(term models.Term, currentTermCode string) *TermResource {
	resource := s.resource(term, currentTermCode)
	return &resource
}

// SerializeTerms converts rows preserving their order. An empty input yields an empty, non-nil Data slice.
func (s *TermSerializer) SerializeTerms(terms []models.Term, currentTermCode string) *TermCollection {
	data := make([]TermResource, 0, len(terms))
	for _, term := range terms {
		data = append(data, s.resource(term, currentTermCode))
	}
	return &TermCollection{Data: data, Links: Links{Self: s.baseURL + "/terms"}}
}

func (s *TermSerializer) resource(term models.Term, currentTermCode string) TermResource {
	return TermResource{
		ID:   term.TermCode,
		Type: termResourceType,
		Attributes: TermAttributes{
			TermCode:                term.TermCode,
			Description:             term.Description,
			StartDate:               formatDate(term.StartDate),
			EndDate:                 formatDate(term.EndDate),
			AcademicYear:            nullString(term.AcademicYear),
			AcademicYearDescription: nullString(term.AcademicYearDescription),
			FinancialAidYear:        nullString(term.FinancialAidYear),
			HousingStartDate:        formatDate(term.HousingStartDate),
			HousingEndDate:          formatDate(term.HousingEndDate),
			Status:                  Status(term.TermCode, currentTermCode),
		},
		Links: Links{Self: s.baseURL + "/terms/" + term.TermCode},
	}
}

// Status classifies termCode against currentTermCode. Term codes sort chronologically.
func Status(termCode, currentTermCode string) string {
	switch {
	case termCode == currentTermCode:
		return StatusCurrent
	case termCode < currentTermCode:
		return StatusPast
	default:
		return StatusFuture
	}
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	formatted := t.Format(dateLayout)
	return &formatted
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
