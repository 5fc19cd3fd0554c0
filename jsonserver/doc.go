// Package jsonserver is an in-memory REST backend following json-server
// conventions. It backs the REST provider tests and the "serve" command.
//
//	GET    /:resource                 list, with ?id=1&id=2, field filters,
//	                                  _sort, _order, _page and _limit
//	GET    /:resource/:id             one record
//	GET    /:resource/:id/:target     records of target whose <resource>Id is id
//	POST   /:resource                 create, assigning the next integer id
//	PUT    /:resource/:id             replace
//	DELETE /:resource/:id             delete, responding with {}
//
// Paginated lists carry the match count in X-Total-Count.
package jsonserver
