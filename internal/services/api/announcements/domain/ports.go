package domain

import (
	"context"

	"villagevisits/internal/core/entity"
	"villagevisits/internal/core/pagination"
	"villagevisits/internal/modkit/httpkit"
)

// ServicePort defines the service contract for announcements
type ServicePort interface {
	Create(ctx context.Context, in AnnouncementInput) (Posted, error)
	List(ctx context.Context, req httpkit.ListRequest) (pagination.Envelope[entity.Announcement], error)
	Get(ctx context.Context, id string) (*entity.Announcement, error)
	Delete(ctx context.Context, id string) error
}
