package signin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/authutil"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Local provider messages, worded the way hosted identity providers word
// them so that Classify treats both providers alike.
const (
	localInvalidCredentials = "Invalid login credentials"
	localNotConfirmed       = "Email not confirmed"
	localTooManyRequests    = "Too many requests"
	localUnavailable        = "Admin store unavailable"
)

// ErrStoreUnavailable marks a lookup that failed because the admins store
// could not be reached. Classify reports it as a connection problem.
var ErrStoreUnavailable = errors.New("admin store unavailable")

// AdminStore is the slice of the admins store the local provider needs.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// Limiter tracks failed attempts per identifier.
type Limiter interface {
	CheckAllowed(ctx context.Context, loginID string) (allowed bool, remaining int, lockedUntil *time.Time)
	RecordFailure(ctx context.Context, loginID string) (lockedOut bool, lockedUntil *time.Time)
	ClearOnSuccess(ctx context.Context, loginID string) error
}

// Local authenticates against the admins collection with bcrypt hashes.
type Local struct {
	admins  AdminStore
	limiter Limiter
	logger  *zap.Logger
}

// NewLocal creates a local provider. limiter may be nil to disable rate
// limiting.
func NewLocal(admins AdminStore, limiter Limiter, logger *zap.Logger) *Local {
	return &Local{admins: admins, limiter: limiter, logger: logger}
}

// SignIn implements Provider.
func (p *Local) SignIn(ctx context.Context, identifier, secret string) (Identity, string, error) {
	if p.limiter != nil {
		if allowed, _, _ := p.limiter.CheckAllowed(ctx, identifier); !allowed {
			return Identity{}, "", &ProviderError{Provider: "local", Message: localTooManyRequests}
		}
	}

	admin, err := p.admins.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			p.recordFailure(ctx, identifier)
			return Identity{}, "", &ProviderError{Provider: "local", Message: localInvalidCredentials}
		}
		p.logger.Error("admin lookup failed", zap.String("email", identifier), zap.Error(err))
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			return Identity{}, "", &ProviderError{Provider: "local", Message: localUnavailable, Err: fmt.Errorf("%w: %w", ErrStoreUnavailable, err)}
		}
		return Identity{}, "", &ProviderError{Provider: "local", Message: "admin lookup failed", Err: err}
	}

	if admin.PasswordHash == "" || !authutil.CheckPassword(secret, admin.PasswordHash) {
		p.recordFailure(ctx, identifier)
		return Identity{}, "", &ProviderError{Provider: "local", Message: localInvalidCredentials}
	}
	if !admin.EmailConfirmed {
		return Identity{}, "", &ProviderError{Provider: "local", Message: localNotConfirmed}
	}

	if p.limiter != nil {
		if err := p.limiter.ClearOnSuccess(ctx, identifier); err != nil {
			p.logger.Warn("failed to clear rate limit record", zap.String("email", identifier), zap.Error(err))
		}
	}
	if err := p.admins.TouchLogin(ctx, admin.ID, time.Now().UTC()); err != nil {
		p.logger.Warn("failed to record admin login time", zap.String("admin_id", admin.ID.Hex()), zap.Error(err))
	}

	return Identity{ID: admin.ID.Hex(), Email: admin.Email}, uuid.NewString(), nil
}

func (p *Local) recordFailure(ctx context.Context, identifier string) {
	if p.limiter == nil {
		return
	}
	if lockedOut, until := p.limiter.RecordFailure(ctx, identifier); lockedOut {
		p.logger.Info("admin login locked out",
			zap.String("email", identifier),
			zap.Timep("locked_until", until))
	}
}
