package dataprovider

import (
	"context"

	"github.com/kbukum/dataprovider/provider"
)

// Operation names, used in errors, logs and spans.
const (
	OpGetList          = "get_list"
	OpGetOne           = "get_one"
	OpGetMany          = "get_many"
	OpGetManyReference = "get_many_reference"
	OpCreate           = "create"
	OpUpdate           = "update"
	OpUpdateMany       = "update_many"
	OpDelete           = "delete"
	OpDeleteMany       = "delete_many"
)

// DataProvider is the contract every backend implements. Operations are
// independent; callers may issue them concurrently. Deadlines and
// cancellation come from ctx, the contract imposes none of its own.
type DataProvider interface {
	provider.Provider

	GetList(ctx context.Context, res Resource, params GetListParams) (*GetListResult, error)
	GetOne(ctx context.Context, res Resource, params GetOneParams) (*GetOneResult, error)
	GetMany(ctx context.Context, res Resource, params GetManyParams) (*GetManyResult, error)
	GetManyReference(ctx context.Context, res Resource, params GetManyReferenceParams) (*GetManyReferenceResult, error)
	Create(ctx context.Context, res Resource, params CreateParams) (*CreateResult, error)
	Update(ctx context.Context, res Resource, params UpdateParams) (*UpdateResult, error)
	UpdateMany(ctx context.Context, res Resource, params UpdateManyParams) (*UpdateManyResult, error)
	Delete(ctx context.Context, res Resource, params DeleteParams) (*DeleteResult, error)
	DeleteMany(ctx context.Context, res Resource, params DeleteManyParams) (*DeleteManyResult, error)
}
