package rest

import (
	"context"
	"time"

	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/httpclient"
	"github.com/kbukum/dataprovider/logger"
	"github.com/kbukum/dataprovider/observability"
)

// startOp opens the span for one contract operation. The returned func
// closes it and records the operation metric.
func (p *Provider) startOp(ctx context.Context, op string, res dataprovider.Resource) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanPrefix+op)
	observability.SetSpanAttribute(ctx, observability.AttrProvider, p.cfg.Name)
	observability.SetSpanAttribute(ctx, observability.AttrOperation, op)
	observability.SetSpanAttribute(ctx, observability.AttrResource, res.Name())

	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			kind, _ := dataprovider.KindOf(err)
			outcome = kind.String()
			observability.SetSpanAttribute(ctx, observability.AttrErrorKind, outcome)
			observability.SetSpanError(ctx, err)
		}
		p.metrics.RecordOperation(ctx, p.cfg.Name, op, outcome, time.Since(start))
		span.End()
	}
}

// exchange issues one HTTP request and classifies its failure. A non-2xx
// status is returned as a status error before any body is looked at.
func (p *Provider) exchange(ctx context.Context, op string, res dataprovider.Resource, req httpclient.Request) (*httpclient.Response, error) {
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		if req.Headers == nil {
			req.Headers = make(map[string]string, 1)
		}
		req.Headers[httpclient.HeaderRequestID] = id
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanHTTPRequest)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrHTTPMethod, req.Method)

	start := time.Now()
	resp, err := p.client.Do(ctx, req)
	elapsed := time.Since(start)

	status := 0
	requestID := ""
	if resp != nil {
		status = resp.StatusCode
		requestID = resp.RequestID
	}
	p.metrics.RecordRequest(ctx, p.cfg.Name, req.Method, status, elapsed)
	p.log.Debug("http exchange", logger.Fields(
		logger.FieldOperation, op,
		logger.FieldResource, res.Name(),
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.Path,
		logger.FieldStatus, status,
		logger.FieldRequestID, requestID,
		logger.FieldDuration, elapsed.Milliseconds(),
	))

	if status != 0 {
		observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, status)
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, requestID)
	}
	if err != nil {
		observability.SetSpanAttribute(ctx, observability.AttrErrorMessage, err.Error())
		return nil, classify(op, res, err)
	}
	return resp, nil
}

// classify maps transport errors onto the data-access taxonomy.
func classify(op string, res dataprovider.Resource, err error) error {
	if code, ok := httpclient.StatusCodeOf(err); ok {
		return dataprovider.NewStatusError(op, res.Name(), code)
	}
	if httpclient.IsInvalidRequest(err) {
		return dataprovider.NewURLError(op, res.Name(), err)
	}
	return dataprovider.NewTransportError(op, res.Name(), err)
}

func (p *Provider) decodeRecord(op string, res dataprovider.Resource, body []byte) (dataprovider.Record, error) {
	rec, err := dataprovider.DecodeRecord(body, p.cfg.IDField)
	if err != nil {
		return dataprovider.Record{}, dataprovider.NewDecodeError(op, res.Name(), err)
	}
	return rec, nil
}

func (p *Provider) decodeRecords(op string, res dataprovider.Resource, body []byte) ([]dataprovider.Record, error) {
	recs, err := dataprovider.DecodeRecords(body, p.cfg.IDField)
	if err != nil {
		return nil, dataprovider.NewDecodeError(op, res.Name(), err)
	}
	return recs, nil
}
