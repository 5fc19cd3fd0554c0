// Package rest implements dataprovider.DataProvider against a plain REST
// backend that exposes one collection endpoint per resource.
//
// Operations map onto HTTP as follows:
//
//	get_list            GET    {base}/{resource}
//	get_one             GET    {base}/{resource}/{id}
//	get_many            GET    {base}/{resource}?id=1&id=2
//	get_many_reference  GET    {base}/{resource}/{id}/{target}
//	create              POST   {base}/{resource}
//	update              PUT    {base}/{resource}/{id}
//	update_many         PUT    {base}/{resource}/{id}   once per id
//	delete              DELETE {base}/{resource}/{id}
//	delete_many         DELETE {base}/{resource}/{id}   once per id
//
// Batch operations report the ids whose sub-request succeeded; an id whose
// request came back with a non-2xx status is dropped, not reported as an
// error. Pagination, sort and filter parameters are only rendered into the
// query string when Config.ListQuery is set.
package rest
