package rest

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/kbukum/dataprovider/dataprovider"
	"github.com/kbukum/dataprovider/httpclient"
	"github.com/kbukum/dataprovider/observability"
)

// GetList fetches every record of res. Total is the number of decoded
// records unless ListQuery is on and the backend sends X-Total-Count.
func (p *Provider) GetList(ctx context.Context, res dataprovider.Resource, params dataprovider.GetListParams) (_ *dataprovider.GetListResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpGetList, res)
	defer func() { end(err) }()

	path, err := collectionPath(res)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpGetList, res.Name(), err)
	}
	req := httpclient.Request{Method: http.MethodGet, Path: path}
	if p.cfg.ListQuery {
		req.Query = listQuery(params.Pagination, params.Sort, params.Filter)
	}

	resp, err := p.exchange(ctx, dataprovider.OpGetList, res, req)
	if err != nil {
		return nil, err
	}
	records, err := p.decodeRecords(dataprovider.OpGetList, res, resp.Body)
	if err != nil {
		return nil, err
	}

	total, info := p.countOf(resp, len(records), params.Pagination)
	observability.SetSpanAttribute(ctx, observability.AttrRecordCount, len(records))
	return &dataprovider.GetListResult{Data: records, Total: &total, PageInfo: info, Meta: params.Meta}, nil
}

// GetOne fetches a single record.
func (p *Provider) GetOne(ctx context.Context, res dataprovider.Resource, params dataprovider.GetOneParams) (_ *dataprovider.GetOneResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpGetOne, res)
	defer func() { end(err) }()

	path, err := recordPath(res, params.ID)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpGetOne, res.Name(), err)
	}
	resp, err := p.exchange(ctx, dataprovider.OpGetOne, res, httpclient.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	rec, err := p.decodeRecord(dataprovider.OpGetOne, res, resp.Body)
	if err != nil {
		return nil, err
	}
	return &dataprovider.GetOneResult{Data: rec}, nil
}

// GetMany fetches the records named by params.IDs in a single request with
// a repeated id query key. Ids the backend does not know are absent from the
// result without error.
func (p *Provider) GetMany(ctx context.Context, res dataprovider.Resource, params dataprovider.GetManyParams) (_ *dataprovider.GetManyResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpGetMany, res)
	defer func() { end(err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrIDCount, len(params.IDs))

	path, err := collectionPath(res)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpGetMany, res.Name(), err)
	}
	resp, err := p.exchange(ctx, dataprovider.OpGetMany, res, httpclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  idQuery(params.IDs),
	})
	if err != nil {
		return nil, err
	}
	records, err := p.decodeRecords(dataprovider.OpGetMany, res, resp.Body)
	if err != nil {
		return nil, err
	}
	return &dataprovider.GetManyResult{Data: records}, nil
}

// GetManyReference lists the records of params.Target that belong to the
// record params.ID of res.
func (p *Provider) GetManyReference(ctx context.Context, res dataprovider.Resource, params dataprovider.GetManyReferenceParams) (_ *dataprovider.GetManyReferenceResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpGetManyReference, res)
	defer func() { end(err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	path, err := referencePath(res, params.ID, params.Target)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpGetManyReference, res.Name(), err)
	}
	req := httpclient.Request{Method: http.MethodGet, Path: path}
	pagination := &params.Pagination
	if p.cfg.ListQuery {
		req.Query = listQuery(pagination, &params.Sort, params.Filter)
	}

	resp, err := p.exchange(ctx, dataprovider.OpGetManyReference, res, req)
	if err != nil {
		return nil, err
	}
	records, err := p.decodeRecords(dataprovider.OpGetManyReference, res, resp.Body)
	if err != nil {
		return nil, err
	}

	total, info := p.countOf(resp, len(records), pagination)
	return &dataprovider.GetManyReferenceResult{Data: records, Total: &total, PageInfo: info, Meta: params.Meta}, nil
}

// Create posts params.Data and returns the stored record with its
// backend-assigned id.
func (p *Provider) Create(ctx context.Context, res dataprovider.Resource, params dataprovider.CreateParams) (_ *dataprovider.CreateResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpCreate, res)
	defer func() { end(err) }()

	path, err := collectionPath(res)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpCreate, res.Name(), err)
	}
	resp, err := p.exchange(ctx, dataprovider.OpCreate, res, httpclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   bodyOf(params.Data),
	})
	if err != nil {
		return nil, err
	}
	rec, err := p.decodeRecord(dataprovider.OpCreate, res, resp.Body)
	if err != nil {
		return nil, err
	}
	return &dataprovider.CreateResult{Data: rec}, nil
}

// Update replaces the record params.ID with params.Data. PreviousData is not
// sent to the backend.
func (p *Provider) Update(ctx context.Context, res dataprovider.Resource, params dataprovider.UpdateParams) (_ *dataprovider.UpdateResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpUpdate, res)
	defer func() { end(err) }()

	req, err := p.updateRequest(res, params.ID, params.Data)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpUpdate, res.Name(), err)
	}
	resp, err := p.exchange(ctx, dataprovider.OpUpdate, res, req)
	if err != nil {
		return nil, err
	}
	rec, err := p.decodeRecord(dataprovider.OpUpdate, res, resp.Body)
	if err != nil {
		return nil, err
	}
	return &dataprovider.UpdateResult{Data: rec}, nil
}

// UpdateMany sends one update per id and reports the ids that succeeded.
func (p *Provider) UpdateMany(ctx context.Context, res dataprovider.Resource, params dataprovider.UpdateManyParams) (_ *dataprovider.UpdateManyResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpUpdateMany, res)
	defer func() { end(err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	ids, err := p.fanOut(ctx, dataprovider.OpUpdateMany, res, params.IDs, func(id dataprovider.Identifier) (httpclient.Request, error) {
		return p.updateRequest(res, id, params.Data)
	})
	if err != nil {
		return nil, err
	}
	return &dataprovider.UpdateManyResult{Data: ids}, nil
}

// Delete removes one record. The deleted record comes from the response
// body when it describes one, otherwise from params.PreviousData.
func (p *Provider) Delete(ctx context.Context, res dataprovider.Resource, params dataprovider.DeleteParams) (_ *dataprovider.DeleteResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpDelete, res)
	defer func() { end(err) }()

	req, err := deleteRequest(res, params.ID)
	if err != nil {
		return nil, dataprovider.NewURLError(dataprovider.OpDelete, res.Name(), err)
	}
	resp, err := p.exchange(ctx, dataprovider.OpDelete, res, req)
	if err != nil {
		return nil, err
	}

	rec, ok, err := p.deletedRecord(res, resp.Body)
	if err != nil {
		return nil, err
	}
	if !ok {
		if params.PreviousData == nil {
			return nil, dataprovider.NewUnknownError(dataprovider.OpDelete, res.Name(),
				"response does not describe the deleted record and no previous data was supplied")
		}
		rec = *params.PreviousData
	}
	return &dataprovider.DeleteResult{Data: rec}, nil
}

// DeleteMany sends one delete per id and reports the ids that succeeded.
func (p *Provider) DeleteMany(ctx context.Context, res dataprovider.Resource, params dataprovider.DeleteManyParams) (_ *dataprovider.DeleteManyResult, err error) {
	ctx, end := p.startOp(ctx, dataprovider.OpDeleteMany, res)
	defer func() { end(err) }()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	ids, err := p.fanOut(ctx, dataprovider.OpDeleteMany, res, params.IDs, func(id dataprovider.Identifier) (httpclient.Request, error) {
		return deleteRequest(res, id)
	})
	if err != nil {
		return nil, err
	}
	return &dataprovider.DeleteManyResult{Data: ids}, nil
}

func (p *Provider) updateRequest(res dataprovider.Resource, id dataprovider.Identifier, data dataprovider.Fields) (httpclient.Request, error) {
	path, err := recordPath(res, id)
	if err != nil {
		return httpclient.Request{}, err
	}
	return httpclient.Request{Method: http.MethodPut, Path: path, Body: bodyOf(data)}, nil
}

func deleteRequest(res dataprovider.Resource, id dataprovider.Identifier) (httpclient.Request, error) {
	path, err := recordPath(res, id)
	if err != nil {
		return httpclient.Request{}, err
	}
	return httpclient.Request{Method: http.MethodDelete, Path: path}, nil
}

// deletedRecord decodes a delete response. An empty body, a JSON null or an
// object without an identifier does not describe a record; that is reported
// as ok=false rather than an error.
func (p *Provider) deletedRecord(res dataprovider.Resource, body []byte) (dataprovider.Record, bool, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return dataprovider.Record{}, false, nil
	}
	rec, err := dataprovider.DecodeRecord(body, p.cfg.IDField)
	switch {
	case err == nil:
		return rec, true, nil
	case errors.Is(err, dataprovider.ErrMissingID):
		return dataprovider.Record{}, false, nil
	default:
		return dataprovider.Record{}, false, dataprovider.NewDecodeError(dataprovider.OpDelete, res.Name(), err)
	}
}

// countOf returns the total for a list-style response and, when derivable,
// the page info.
func (p *Provider) countOf(resp *httpclient.Response, n int, pagination *dataprovider.PaginationPayload) (int, *dataprovider.PageInfo) {
	if !p.cfg.ListQuery {
		return n, nil
	}
	total, ok := totalFromHeader(resp.Header(headerTotalCount))
	if !ok {
		return n, nil
	}
	return total, pageInfo(pagination, total)
}

// bodyOf never sends a JSON null for a nil field map.
func bodyOf(data dataprovider.Fields) dataprovider.Fields {
	if data == nil {
		return dataprovider.Fields{}
	}
	return data
}
