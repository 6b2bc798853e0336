package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userrepo "github.com/Zartof23/mytops-sub000/internal/data/repos/user"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	pkgerrors "github.com/Zartof23/mytops-sub000/internal/pkg/errors"
	"github.com/Zartof23/mytops-sub000/internal/platform/ctxutil"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// ProfileUpdate carries the optional profile fields a PATCH may set. Nil
// means "leave unchanged".
type ProfileUpdate struct {
	DisplayName    *string
	PreferredTheme *string
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*types.User, error)
	RegenerateAvatar(ctx context.Context) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, avatarService AvatarService) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	return us.requireUser(ctx)
}

func (us *userService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*types.User, error) {
	user, err := us.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", pkgerrors.ErrInvalidArgument)
		}
		if err := us.userRepo.UpdateDisplayName(ctx, nil, user.ID, name); err != nil {
			return nil, fmt.Errorf("update display name: %w", err)
		}
		user.DisplayName = name
	}
	if update.PreferredTheme != nil {
		theme := strings.TrimSpace(*update.PreferredTheme)
		switch theme {
		case "light", "dark", "system":
		default:
			return nil, fmt.Errorf("%w: unknown theme %q", pkgerrors.ErrInvalidArgument, theme)
		}
		if err := us.userRepo.UpdatePreferredTheme(ctx, nil, user.ID, theme); err != nil {
			return nil, fmt.Errorf("update preferred theme: %w", err)
		}
		user.PreferredTheme = theme
	}
	return user, nil
}

func (us *userService) RegenerateAvatar(ctx context.Context) (*types.User, error) {
	user, err := us.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := us.avatarService.CreateInitialsAvatar(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("regenerate avatar: %w", err)
	}
	return user, nil
}

func (us *userService) requireUser(ctx context.Context) (*types.User, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", pkgerrors.ErrUnauthorized)
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user not found", pkgerrors.ErrNotFound)
	}
	return users[0], nil
}
