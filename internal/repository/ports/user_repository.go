package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, email, firstName, lastName string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
