package rest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/httpclient"
	"github.com/kbukum/dataprovider/logger"
)

// fanOut issues one request per id, at most Config.Concurrency at a time.
// An id whose request returns a non-2xx status is dropped. Any other failure
// (the request could not be built, sent or read) cancels the remaining
// requests and fails the whole batch. Successful ids keep caller order.
func (p *Provider) fanOut(
	ctx context.Context,
	op string,
	res dataprovider.Resource,
	ids []dataprovider.Identifier,
	build func(dataprovider.Identifier) (httpclient.Request, error),
) ([]dataprovider.Identifier, error) {
	succeeded := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			req, err := build(id)
			if err != nil {
				return dataprovider.NewURLError(op, res.Name(), err)
			}
			_, err = p.exchange(gctx, op, res, req)
			switch {
			case err == nil:
				succeeded[i] = true
			case dataprovider.IsStatusError(err):
				code, _ := dataprovider.StatusCode(err)
				p.metrics.RecordBatchDrop(gctx, p.cfg.Name, op)
				p.log.Warn("batch item dropped", logger.Fields(
					logger.FieldOperation, op,
					logger.FieldResource, res.Name(),
					"id", id.String(),
					logger.FieldStatus, code,
				))
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]dataprovider.Identifier, 0, len(ids))
	for i, id := range ids {
		if succeeded[i] {
			out = append(out, id)
		}
	}
	return out, nil
}
