package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for chiefs
type ServicePort interface {
	Create(ctx context.Context, in ChiefInput) (*entity.ChiefUser, error)
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.ChiefUser], error)
}
