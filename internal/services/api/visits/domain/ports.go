package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for visits
type ServicePort interface {
	Create(ctx context.Context, in VisitInput, file *Attachment) (*entity.Visit, error)
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Visit], error)
	Stats(ctx context.Context, q StatsQuery) (Stats, error)
}
