package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for villages
type ServicePort interface {
	Create(ctx context.Context, in VillageInput) (*entity.Village, error)
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Village], error)
	Get(ctx context.Context, id string) (*entity.Village, error)
	Update(ctx context.Context, id string, in VillageInput) (*entity.Village, error)
	Delete(ctx context.Context, id string) error
}

// LookupPort lets other modules resolve a village
type LookupPort interface {
	Get(ctx context.Context, id string) (*entity.Village, error)
}
