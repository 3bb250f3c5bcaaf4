package headquarters

import "context"

type HeadquartersRepository interface {
	Create(ctx context.Context, h Headquarters) (Headquarters, error)
	GetByID(ctx context.Context, id string) (Headquarters, error)
	List(ctx context.Context) ([]Headquarters, error)
}
