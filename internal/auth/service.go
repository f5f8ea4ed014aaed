package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estradaranch/flockherd-backend/internal/users"
	pkgauth "github.com/estradaranch/flockherd-backend/pkg/auth"
	"github.com/estradaranch/flockherd-backend/pkg/auth/session"
	"github.com/estradaranch/flockherd-backend/pkg/config"
	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/estradaranch/flockherd-backend/pkg/security"
	"gorm.io/gorm"
)

// Service exposes credential and session lifecycle operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Profile(ctx context.Context, userID uint) (*models.User, error)
}

// LoginInput carries the credentials posted by the login form.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult bundles the signed cookie token with the authenticated user.
type LoginResult struct {
	Token     string
	SessionID string
	User      *models.User
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type sessionManager interface {
	Create(ctx context.Context, sessionID string, userID uint) error
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	usersRepo   *users.Repository
	sessions    sessionManager
	dbClient    *db.Client
	sessionCfg  config.SessionConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs an auth service instance.
func NewService(
	usersRepo *users.Repository,
	sessions sessionManager,
	dbClient *db.Client,
	sessionCfg config.SessionConfig,
	passwordCfg config.PasswordConfig,
) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		usersRepo:   usersRepo,
		sessions:    sessions,
		dbClient:    dbClient,
		sessionCfg:  sessionCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Login verifies the credentials and opens a server-side session. The
// rejection message never reveals whether the username exists.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	user, err := s.usersRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")
	}

	sessionID := session.NewSessionID()
	if err := s.sessions.Create(ctx, sessionID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	token, err := pkgauth.MintSessionToken(s.sessionCfg, s.now(), pkgauth.SessionTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &LoginResult{Token: token, SessionID: sessionID, User: user}, nil
}

// Logout revokes the server-side session; an already-gone session is fine.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Register creates a new account. Uniqueness is checked up front for the
// per-field messages and enforced again by the unique indexes inside the
// transaction.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username, email and password are required")
	}
	if input.Password != input.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.usersRepo.WithTx(tx)

		if _, err := repo.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.usersRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
