// Package dataprovider defines a uniform, resource-oriented data-access
// contract that any backend can satisfy.
//
// The contract is a fixed set of nine operations (list, get-one, get-many,
// get-many-by-reference, create, update, update-many, delete, delete-many),
// each with a dedicated parameter and result type. Records are backend agnostic:
// an Identifier (text or non-negative integer) plus an open mapping of JSON
// fields.
//
// # Usage
//
//	var p dataprovider.DataProvider = restProvider
//	res, err := p.GetOne(ctx, dataprovider.NewResource("/posts/"), dataprovider.GetOneParams{
//	    ID: dataprovider.NumberID(1),
//	})
//	if dataprovider.IsStatusError(err) {
//	    code, _ := dataprovider.StatusCode(err)
//	    ...
//	}
//
// Failures are always *Error values classified by ErrorKind so callers branch
// on the failure class without string matching.
package dataprovider
