package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for residents
type ServicePort interface {
	Register(ctx context.Context, in ResidentInput) (*entity.ResidentUser, error)
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.ResidentUser], error)
}
