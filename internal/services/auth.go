package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/Zartof23/mytops-sub000/internal/data/repos/user"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

type AuthService interface {
	Register(ctx context.Context, email, displayName, password string) (*types.User, error)
	// Login returns (accessToken, refreshToken, error).
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	// ContextFromToken validates the JWT and returns a context carrying the
	// authenticated RequestData.
	ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	userTokenRepo userrepo.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	userTokenRepo userrepo.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, email, displayName, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", pkgerrors.ErrInvalidArgument)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", pkgerrors.ErrInvalidArgument)
	}
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", pkgerrors.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if as.avatarService != nil {
			if err := as.avatarService.CreateInitialsAvatar(ctx, tx, user); err != nil {
				// Avatar generation is cosmetic; log and keep the account.
				as.log.Warn("avatar generation failed", "error", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("lookup user: %w", err)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("%w: invalid email or password", pkgerrors.ErrUnauthorized)
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid email or password", pkgerrors.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active session per user: replace any prior token row.
		if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
			return fmt.Errorf("clear prior tokens: %w", err)
		}
		var issueErr error
		accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, user.ID)
		return issueErr
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: missing refresh token", pkgerrors.ErrUnauthorized)
	}

	rows, err := as.userTokenRepo.GetByRefreshTokens(ctx, nil, []string{rd.RefreshToken})
	if err != nil {
		return "", "", fmt.Errorf("lookup refresh token: %w", err)
	}
	if len(rows) == 0 {
		return "", "", fmt.Errorf("%w: unknown refresh token", pkgerrors.ErrUnauthorized)
	}
	session := rows[0]
	if session.ExpiresAt.Before(time.Now()) {
		return "", "", fmt.Errorf("%w: refresh token expired", pkgerrors.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{session.UserID}); err != nil {
			return fmt.Errorf("rotate tokens: %w", err)
		}
		var issueErr error
		accessToken, refreshToken, issueErr = as.issueTokens(ctx, tx, session.UserID)
		return issueErr
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return fmt.Errorf("%w: not logged in", pkgerrors.ErrUnauthorized)
	}
	return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{userID})
}

func (as *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("%w: invalid token", pkgerrors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("%w: invalid claims", pkgerrors.ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", pkgerrors.ErrUnauthorized)
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      userID,
		TokenString: tokenString,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	_, err = as.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}})
	if err != nil {
		return "", "", fmt.Errorf("persist refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
