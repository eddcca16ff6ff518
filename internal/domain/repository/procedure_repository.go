package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// ProcedureRepository defines the interface for the services catalog
type ProcedureRepository interface {
	Create(ctx context.Context, procedure *entity.Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Procedure, error)
	Update(ctx context.Context, procedure *entity.Procedure) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, activeOnly bool) ([]entity.Procedure, int64, error)
}
