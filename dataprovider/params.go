package dataprovider

// GetListParams selects records of a resource.
type GetListParams struct {
	Pagination *PaginationPayload
	Sort       *SortPayload
	Filter     FilterPayload
	Meta       Meta
}

// GetListResult holds a page of records. Total, when set, counts the records
// the provider knows about; without a separate count channel it equals
// len(Data).
type GetListResult struct {
	Data     []Record
	Total    *int
	PageInfo *PageInfo
	Meta     Meta
}

// GetOneParams names a single record.
type GetOneParams struct {
	ID   Identifier
	Meta Meta
}

// GetOneResult holds the requested record.
type GetOneResult struct {
	Data Record
}

// GetManyParams names a set of records.
type GetManyParams struct {
	IDs  []Identifier
	Meta Meta
}

// Validate requires at least one identifier.
func (p GetManyParams) Validate() error {
	return requireIDs(OpGetMany, p.IDs)
}

// GetManyResult holds the records the backend had. Order is unspecified and
// ids the backend does not know are silently missing.
type GetManyResult struct {
	Data []Record
}

// GetManyReferenceParams lists records of Target related to the record ID.
type GetManyReferenceParams struct {
	Target     string
	ID         Identifier
	Pagination PaginationPayload
	Sort       SortPayload
	Filter     FilterPayload
	Meta       Meta
}

// Validate requires a target resource name.
func (p GetManyReferenceParams) Validate() error {
	if normalizeSegment(p.Target) == "" {
		return NewUnknownError(OpGetManyReference, "", "target resource is required")
	}
	return nil
}

// GetManyReferenceResult holds the related records.
type GetManyReferenceResult struct {
	Data     []Record
	Total    *int
	PageInfo *PageInfo
	Meta     Meta
}

// CreateParams carries the fields of the new record; the backend assigns the id.
type CreateParams struct {
	Data Fields
	Meta Meta
}

// CreateResult holds the created record including its assigned id.
type CreateResult struct {
	Data Record
}

// UpdateParams replaces the fields of one record. PreviousData is
// informational and providers may ignore it.
type UpdateParams struct {
	ID           Identifier
	Data         Fields
	PreviousData Record
	Meta         Meta
}

// UpdateResult holds the updated record.
type UpdateResult struct {
	Data Record
}

// UpdateManyParams applies the same fields to a set of records.
type UpdateManyParams struct {
	IDs  []Identifier
	Data Fields
	Meta Meta
}

// Validate requires at least one identifier.
func (p UpdateManyParams) Validate() error {
	return requireIDs(OpUpdateMany, p.IDs)
}

// UpdateManyResult lists the ids that were updated. Any subset, including
// the empty one, is a successful result.
type UpdateManyResult struct {
	Data []Identifier
}

// DeleteParams names the record to delete. PreviousData is returned when the
// backend response does not describe the deleted record.
type DeleteParams struct {
	ID           Identifier
	PreviousData *Record
	Meta         Meta
}

// DeleteResult holds the deleted record.
type DeleteResult struct {
	Data Record
}

// DeleteManyParams names a set of records to delete.
type DeleteManyParams struct {
	IDs  []Identifier
	Meta Meta
}

// Validate requires at least one identifier.
func (p DeleteManyParams) Validate() error {
	return requireIDs(OpDeleteMany, p.IDs)
}

// DeleteManyResult lists the ids that were deleted.
type DeleteManyResult struct {
	Data []Identifier
}

func requireIDs(op string, ids []Identifier) error {
	if len(ids) == 0 {
		return NewUnknownError(op, "", "at least one identifier is required")
	}
	return nil
}
