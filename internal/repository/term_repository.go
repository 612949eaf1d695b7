package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/terms-api/internal/models"
	"github.com/noah-isme/terms-api/internal/serializer"
	appErrors "github.com/noah-isme/terms-api/pkg/errors"
)

// Querier runs a query and scans every resulting row into dest.
// *sqlx.DB, *sqlx.Conn and *sqlx.Tx all satisfy it.
type Querier interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// TermSerializer turns term rows into API resources.
type TermSerializer interface {
	SerializeTerm(term models.Term, currentTermCode string) *serializer.TermResource
	SerializeTerms(terms []models.Term, currentTermCode string) *serializer.TermCollection
}

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// TermRepository reads academic terms and enforces result cardinality.
type TermRepository struct {
	db         *sqlx.DB
	serializer TermSerializer
	metrics    queryObserver
}

// NewTermRepository instantiates a term repository. metrics may be nil.
func NewTermRepository(db *sqlx.DB, s TermSerializer, metrics queryObserver) *TermRepository {
	return &TermRepository{db: db, serializer: s, metrics: metrics}
}

// GetCurrentTermCode resolves the code of the current term using the caller's connection.
// The lookup must produce exactly one row carrying a term code.
func (r *TermRepository) GetCurrentTermCode(ctx context.Context, q Querier) (string, error) {
	var rows []models.CurrentTerm
	if err := r.selectRows(ctx, q, "current_term", &rows, currentTermQuery); err != nil {
		return "", err
	}

	row, err := singleRow(rows)
	if err != nil {
		return "", err
	}
	if !row.TermCode.Valid || row.TermCode.String == "" {
		return "", appErrors.ErrMissingTermCode
	}
	return row.TermCode.String, nil
}

// CurrentTermCode is GetCurrentTermCode on a connection acquired from the pool.
func (r *TermRepository) CurrentTermCode(ctx context.Context) (string, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return r.GetCurrentTermCode(ctx, conn)
}

// GetTerms returns every term serialized as a collection.
func (r *TermRepository) GetTerms(ctx context.Context) (*serializer.TermCollection, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	currentTermCode, err := r.GetCurrentTermCode(ctx, conn)
	if err != nil {
		return nil, err
	}

	var rows []models.Term
	if err := r.selectRows(ctx, conn, "list_terms", &rows, listTermsQuery); err != nil {
		return nil, err
	}
	return r.serializer.SerializeTerms(rows, currentTermCode), nil
}

// GetTermByTermCode returns the serialized term for termCode, or nil when no
// such term exists.
func (r *TermRepository) GetTermByTermCode(ctx context.Context, termCode string) (*serializer.TermResource, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	currentTermCode, err := r.GetCurrentTermCode(ctx, conn)
	if err != nil {
		return nil, err
	}

	var rows []models.Term
	if err := r.selectRows(ctx, conn, "term_by_code", &rows, termByCodeQuery, termCode); err != nil {
		return nil, err
	}

	row, err := optionalRow(rows)
	if err != nil || row == nil {
		return nil, err
	}
	return r.serializer.SerializeTerm(*row, currentTermCode), nil
}

func (r *TermRepository) selectRows(ctx context.Context, q Querier, label string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := q.SelectContext(ctx, dest, query, args...)
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
	return err
}

func singleRow[T any](rows []T) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, appErrors.ErrEmptyResult
	case 1:
		return &rows[0], nil
	default:
		return nil, appErrors.ErrMultipleResults
	}
}

// optionalRow is singleRow where zero rows means "not found" rather than an error.
func optionalRow[T any](rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return singleRow(rows)
}
