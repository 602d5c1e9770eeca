package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	userrepo "github.com/yungbote/mindwell-backend/internal/data/repos/user"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/ctxutil"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

const MinPasswordLength = 8

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, name string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, *types.User, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// CreateAdmin creates an admin account, or promotes and resets an existing one.
	CreateAdmin(ctx context.Context, email, password, name string) (*types.User, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	clock         clock
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

var errInvalidCredentials = apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))

func validateCredentials(email, password, name string) error {
	if !strings.Contains(email, "@") {
		return apierr.BadRequest("invalid_email", errors.New("a valid email is required"))
	}
	if len(password) < MinPasswordLength {
		return apierr.BadRequest("weak_password", fmt.Errorf("password must be at least %d characters", MinPasswordLength))
	}
	if strings.TrimSpace(name) == "" {
		return apierr.BadRequest("invalid_name", errors.New("name is required"))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (as *authService) RegisterUser(ctx context.Context, email, password, name string) (*types.User, error) {
	email = userrepo.NormalizeEmail(email)
	if err := validateCredentials(email, password, name); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
		Role:     types.RoleUser,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("email_taken", errors.New("email already registered"))
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apierr.Conflict("email_taken", errors.New("email already registered"))
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, *types.User, error) {
	user, err := as.userRepo.GetByEmail(ctx, nil, userrepo.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	now := as.clock.now()
	accessToken, err := as.generateAccessToken(user, now)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userTokenRepo.DeleteExpired(ctx, tx, user.ID, now); err != nil {
			return fmt.Errorf("delete expired tokens: %w", err)
		}
		_, err := as.userTokenRepo.Create(ctx, tx, &types.UserToken{
			UserID:      user.ID,
			AccessToken: accessToken,
			ExpiresAt:   now.Add(as.accessTTL),
		})
		return err
	})
	if err != nil {
		as.log.Warn("Create user token error", "error", err)
		return "", nil, fmt.Errorf("create user token: %w", err)
	}
	return accessToken, user, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return errNoCaller
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userTokenRepo.DeleteByAccessToken(ctx, tx, rd.TokenString)
	})
}

func (as *authService) generateAccessToken(user *types.User, now time.Time) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("unauthorized", errors.New("missing token"))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.clock.now))
	if err != nil {
		return ctx, apierr.Unauthorized("unauthorized", fmt.Errorf("invalid token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthorized("unauthorized", errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("unauthorized", errors.New("invalid subject in token"))
	}
	stored, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ctx, apierr.Unauthorized("unauthorized", errors.New("token revoked"))
		}
		return ctx, fmt.Errorf("load user token: %w", err)
	}
	if stored.UserID != userID || stored.Expired(as.clock.now()) {
		return ctx, apierr.Unauthorized("unauthorized", errors.New("invalid or expired token"))
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        claims.Role,
	}), nil
}

func (as *authService) CreateAdmin(ctx context.Context, email, password, name string) (*types.User, error) {
	email = userrepo.NormalizeEmail(email)
	if err := validateCredentials(email, password, name); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	var out *types.User
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userRepo.GetByEmail(ctx, tx, email)
		switch {
		case err == nil:
			if err := as.userRepo.UpdateRole(ctx, tx, existing.ID, types.RoleAdmin); err != nil {
				return err
			}
			if err := as.userRepo.UpdatePassword(ctx, tx, existing.ID, hash); err != nil {
				return err
			}
			existing.Role = types.RoleAdmin
			existing.Password = hash
			out = existing
			return nil
		case errors.Is(err, apperrors.ErrNotFound):
			created, err := as.userRepo.Create(ctx, tx, []*types.User{{
				Email:    email,
				Password: hash,
				Name:     strings.TrimSpace(name),
				Role:     types.RoleAdmin,
			}})
			if err != nil {
				return err
			}
			out = created[0]
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("admin account ready", "user_id", out.ID)
	return out, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

// RequireAdmin fails unless the caller carries the admin role.
func RequireAdmin(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return errNoCaller
	}
	if !rd.IsAdmin() {
		return apierr.New(http.StatusForbidden, "forbidden", errors.New("admin role required"))
	}
	return nil
}
