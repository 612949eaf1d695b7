package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/terms-api/internal/serializer"
	appErrors "github.com/noah-isme/terms-api/pkg/errors"
)

const (
	termListCacheKey   = "list"
	termCodeCacheKey   = "code:"
	currentTermCodeKey = "current"
)

type termRepository interface {
	CurrentTermCode(ctx context.Context) (string, error)
	GetTerms(ctx context.Context) (*serializer.TermCollection, error)
	GetTermByTermCode(ctx context.Context, termCode string) (*serializer.TermResource, error)
}

// TermCodeRequest carries a term code taken from the request path.
type TermCodeRequest struct {
	TermCode string `validate:"required,len=6,numeric"`
}

// CurrentTerm is the payload of the current term endpoint.
type CurrentTerm struct {
	TermCode string `json:"termCode"`
}

// TermServiceParams groups constructor dependencies.
type TermServiceParams struct {
	Repo      termRepository
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// TermService exposes read-only term workflows.
type TermService struct {
	repo      termRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewTermService creates a new term service instance.
func NewTermService(params TermServiceParams) *TermService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &TermService{
		repo:      params.Repo,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		cacheTTL:  params.CacheTTL,
	}
}

// List returns every term.
func (s *TermService) List(ctx context.Context) (*serializer.TermCollection, error) {
	var cached serializer.TermCollection
	if s.cache.Get(ctx, termListCacheKey, &cached) {
		return &cached, nil
	}

	terms, err := s.repo.GetTerms(ctx)
	if err != nil {
		return nil, s.lookupError(err, "failed to list terms")
	}

	s.cache.Set(ctx, termListCacheKey, terms, s.cacheTTL)
	return terms, nil
}

// Get returns a single term by code.
func (s *TermService) Get(ctx context.Context, req TermCodeRequest) (*serializer.TermResource, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "term code must be six digits")
	}

	key := termCodeCacheKey + req.TermCode
	var cached serializer.TermResource
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	term, err := s.repo.GetTermByTermCode(ctx, req.TermCode)
	if err != nil {
		return nil, s.lookupError(err, "failed to load term")
	}
	if term == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}

	s.cache.Set(ctx, key, term, s.cacheTTL)
	return term, nil
}

// Current returns the code of the current term.
func (s *TermService) Current(ctx context.Context) (*CurrentTerm, error) {
	var cached CurrentTerm
	if s.cache.Get(ctx, currentTermCodeKey, &cached) {
		return &cached, nil
	}

	code, err := s.repo.CurrentTermCode(ctx)
	if err != nil {
		return nil, s.lookupError(err, "failed to resolve current term")
	}

	current := &CurrentTerm{TermCode: code}
	s.cache.Set(ctx, currentTermCodeKey, current, s.cacheTTL)
	return current, nil
}

// lookupError maps repository failures to API errors. The original error stays reachable through Unwrap.
func (s *TermService) lookupError(err error, message string) error {
	if appErrors.IsCardinality(err) {
		var classified *appErrors.Error
		errors.As(err, &classified)
		s.metrics.RecordLookupFailure(classified.Code)
		s.logger.Error("term lookup returned unexpected rows", zap.String("code", classified.Code), zap.Error(err))
		return appErrors.Wrap(err, classified.Code, classified.Status, message)
	}
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
