package dataprovider

import (
	"context"
	"time"

	"github.com/kbukum/dataprovider/logger"
)

// WithLogging wraps p so that every operation is logged with its name,
// resource and duration. Successful calls log at debug, failures at error.
func WithLogging(p DataProvider, log *logger.Logger) DataProvider {
	return &loggingProvider{inner: p, log: log.WithComponent("dataprovider")}
}

type loggingProvider struct {
	inner DataProvider
	log   *logger.Logger
}

func (l *loggingProvider) Name() string                         { return l.inner.Name() }
func (l *loggingProvider) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingProvider) GetList(ctx context.Context, res Resource, params GetListParams) (*GetListResult, error) {
	start := time.Now()
	out, err := l.inner.GetList(ctx, res, params)
	l.record(OpGetList, res, start, err)
	return out, err
}

func (l *loggingProvider) GetOne(ctx context.Context, res Resource, params GetOneParams) (*GetOneResult, error) {
	start := time.Now()
	out, err := l.inner.GetOne(ctx, res, params)
	l.record(OpGetOne, res, start, err)
	return out, err
}

func (l *loggingProvider) GetMany(ctx context.Context, res Resource, params GetManyParams) (*GetManyResult, error) {
	start := time.Now()
	out, err := l.inner.GetMany(ctx, res, params)
	l.record(OpGetMany, res, start, err)
	return out, err
}

func (l *loggingProvider) GetManyReference(ctx context.Context, res Resource, params GetManyReferenceParams) (*GetManyReferenceResult, error) {
	start := time.Now()
	out, err := l.inner.GetManyReference(ctx, res, params)
	l.record(OpGetManyReference, res, start, err)
	return out, err
}

func (l *loggingProvider) Create(ctx context.Context, res Resource, params CreateParams) (*CreateResult, error) {
	start := time.Now()
	out, err := l.inner.Create(ctx, res, params)
	l.record(OpCreate, res, start, err)
	return out, err
}

func (l *loggingProvider) Update(ctx context.Context, res Resource, params UpdateParams) (*UpdateResult, error) {
	start := time.Now()
	out, err := l.inner.Update(ctx, res, params)
	l.record(OpUpdate, res, start, err)
	return out, err
}

func (l *loggingProvider) UpdateMany(ctx context.Context, res Resource, params UpdateManyParams) (*UpdateManyResult, error) {
	start := time.Now()
	out, err := l.inner.UpdateMany(ctx, res, params)
	l.record(OpUpdateMany, res, start, err)
	return out, err
}

func (l *loggingProvider) Delete(ctx context.Context, res Resource, params DeleteParams) (*DeleteResult, error) {
	start := time.Now()
	out, err := l.inner.Delete(ctx, res, params)
	l.record(OpDelete, res, start, err)
	return out, err
}

func (l *loggingProvider) DeleteMany(ctx context.Context, res Resource, params DeleteManyParams) (*DeleteManyResult, error) {
	start := time.Now()
	out, err := l.inner.DeleteMany(ctx, res, params)
	l.record(OpDeleteMany, res, start, err)
	return out, err
}

func (l *loggingProvider) record(op string, res Resource, start time.Time, err error) {
	fields := map[string]interface{}{
		logger.FieldOperation: op,
		logger.FieldResource:  res.Name(),
		"provider":            l.inner.Name(),
		logger.FieldDuration:  time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.Error("data provider operation failed", fields)
		return
	}
	l.log.Debug("data provider operation ok", fields)
}
