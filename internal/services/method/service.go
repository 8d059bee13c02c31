// Package method manages the transfer method registry and its read cache.
package method

import (
	"context"
	"errors"
	"fmt"

	apperrors "wasit/internal/errors"
	"wasit/internal/metrics"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/validation"

	"go.uber.org/zap"
)

const cacheName = "methods"

// Cache is the methods list cache. *cache.CacheService implements it.
type Cache interface {
	GetMethods(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, bool, error)
	SetMethods(ctx context.Context, onlyEnabled bool, methods []models.TransferMethod) error
	InvalidateMethods(ctx context.Context) error
}

// Input carries the admin-editable fields. Nil pointers are left unchanged on update.
type Input struct {
	Name      *string
	Code      *string
	Category  *models.MethodCategory
	Enabled   *bool
	SortOrder *int
}

type Service interface {
	List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error)
	Get(ctx context.Context, ref string) (*models.TransferMethod, error)
	Create(ctx context.Context, in Input) (*models.TransferMethod, error)
	Update(ctx context.Context, id string, in Input) (*models.TransferMethod, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (*models.TransferMethod, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    repositories.MethodRepository
	cache   Cache
	metrics metrics.Collector
	logger  *zap.Logger
}

// NewService wires the registry. cache may be nil when Redis is not configured.
func NewService(repo repositories.MethodRepository, cache Cache, m metrics.Collector, logger *zap.Logger) Service {
	if m == nil {
		m = metrics.NoopCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:    repo,
		cache:   cache,
		metrics: m,
		logger:  logger.With(zap.String("component", "method_service")),
	}
}

// List serves from the cache when possible. Cache errors degrade to a database read.
func (s *service) List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error) {
	if s.cache != nil {
		methods, found, err := s.cache.GetMethods(ctx, onlyEnabled)
		switch {
		case err != nil:
			s.logger.Warn("methods cache read failed", zap.Error(err))
		case found:
			s.metrics.RecordCacheHit(cacheName)
			return methods, nil
		}
		s.metrics.RecordCacheMiss(cacheName)
	}

	methods, err := s.repo.List(ctx, onlyEnabled)
	if err != nil {
		return nil, fmt.Errorf("list methods: %w", err)
	}
	if methods == nil {
		methods = []models.TransferMethod{}
	}

	if s.cache != nil {
		if err := s.cache.SetMethods(ctx, onlyEnabled, methods); err != nil {
			s.logger.Warn("methods cache write failed", zap.Error(err))
		}
	}
	return methods, nil
}

func (s *service) Get(ctx context.Context, ref string) (*models.TransferMethod, error) {
	m, err := s.repo.GetByRef(ctx, ref)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get method: %w", err)
	}
	return m, nil
}

func (s *service) Create(ctx context.Context, in Input) (*models.TransferMethod, error) {
	m := &models.TransferMethod{Category: models.MethodCategoryOther, Enabled: true}
	apply(m, in)
	if err := validate(m); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, s.writeError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("method created", zap.String("code", m.Code))
	return m, nil
}

func (s *service) Update(ctx context.Context, id string, in Input) (*models.TransferMethod, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(m, in)
	if err := validate(m); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, s.writeError(err)
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *service) SetEnabled(ctx context.Context, id string, enabled bool) (*models.TransferMethod, error) {
	return s.Update(ctx, id, Input{Enabled: &enabled})
}

// Delete refuses methods still referenced by a fee rule or an order; disable them instead.
func (s *service) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	used, err := s.repo.IsReferenced(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("check method references: %w", err)
	}
	if used {
		return apperrors.ErrMethodInUse
	}

	if err := s.repo.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrMethodNotFound
		}
		return fmt.Errorf("delete method: %w", err)
	}
	s.invalidate(ctx)
	s.logger.Info("method deleted", zap.String("code", m.Code))
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMethods(ctx); err != nil {
		s.logger.Warn("methods cache invalidation failed", zap.Error(err))
	}
}

func (s *service) writeError(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return apperrors.ErrMethodCodeTaken
	}
	return fmt.Errorf("save method: %w", err)
}

func apply(m *models.TransferMethod, in Input) {
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Code != nil {
		m.Code = models.NormalizeCode(*in.Code)
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.Enabled != nil {
		m.Enabled = *in.Enabled
	}
	if in.SortOrder != nil {
		m.SortOrder = *in.SortOrder
	}
}

func validate(m *models.TransferMethod) error {
	v := validation.New()
	v.Method(m)
	if !v.Valid() {
		return apperrors.ErrInvalidRequest.WithMessage("%s", v.Error())
	}
	return nil
}
