package repository

import (
	"context"

	"github.com/jhoicas/Khata-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateFirst persiste user solo si la tienda aún no tiene usuarios; si ya tiene devuelve
	// domain.ErrForbidden. La comprobación y el alta son atómicas.
	CreateFirst(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
