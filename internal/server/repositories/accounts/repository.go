package accounts

import (
	"context"
	"time"

	"github.com/innoclinic/authsvc/internal/server/models"
)

// Repository is the narrow account-store surface the credential service
// depends on. Implementations own durability and the uniqueness guarantee
// for email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Insert(ctx context.Context, account *models.Account) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	ExistsByID(ctx context.Context, id string) (bool, error)

	// IncrementFailedAttempts bumps the failed sign-in counter in the store
	// itself and returns the new value. The arithmetic must happen store-side
	// in a single statement so concurrent failures cannot lose counts.
	IncrementFailedAttempts(ctx context.Context, id string) (int, error)

	// Lock arms the lockout until the given instant and resets the counter.
	Lock(ctx context.Context, id string, until time.Time) error
}
