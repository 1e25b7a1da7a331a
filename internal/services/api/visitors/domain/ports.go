// Package domain holds the contracts of the visitors listing
package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for visitors
// a resident's visitors are listed as their visits with the visitor attached
type ServicePort interface {
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Visit], error)
}
