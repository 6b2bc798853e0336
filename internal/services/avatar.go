package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	userrepo "github.com/Zartof23/mytops-sub000/internal/data/repos/user"
	types "github.com/Zartof23/mytops-sub000/internal/domain"
	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
	"github.com/Zartof23/mytops-sub000/internal/platform/mediastore"
)

type AvatarService interface {
	// CreateInitialsAvatar renders an initials avatar, stores it, and updates
	// the user's avatar fields inside the given transaction.
	CreateInitialsAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	GenerateInitialsAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	store    mediastore.Store

	bgColors []color.NRGBA
	fontFace font.Face
}

// avatarPalette is the fixed background rotation for generated avatars.
var avatarPalette = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0xF5, A: 0xFF},
	{R: 0x0E, G: 0xA5, B: 0xE9, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, store mediastore.Store) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath != "" {
		serviceLog.Info("Loading avatar font", "font", fontPath)
		loaded, err := loadFontFace(fontPath, 206)
		if err != nil {
			return nil, fmt.Errorf("could not load avatar font: %w", err)
		}
		face = loaded
	} else {
		// Without a font we still render the colored disc, just no initials.
		serviceLog.Warn("AVATAR_FONT not set; avatars will have no initials")
	}

	return &avatarService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		store:    store,
		bgColors: avatarPalette,
		fontFace: face,
	}, nil
}

func (as *avatarService) CreateInitialsAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	buf, err := as.GenerateInitialsAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarStoreKey)

	// Versioned key so browsers never serve a stale cached avatar.
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.store.Save(ctx, newKey, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to store user avatar: %w", err)
	}

	user.AvatarStoreKey = newKey
	user.AvatarURL = as.store.PublicURL(newKey)
	if err := as.userRepo.UpdateAvatarFields(ctx, tx, user.ID, newKey, user.AvatarURL); err != nil {
		return fmt.Errorf("failed to persist avatar fields: %w", err)
	}

	// Best-effort delete AFTER the new object is live.
	if oldKey != "" && oldKey != newKey {
		if err := as.store.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) GenerateInitialsAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(user.ID))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if as.fontFace != nil {
		initials := computeInitials(user.DisplayName)

		dc.SetFontFace(as.fontFace)
		tw, th := dc.MeasureString(initials)
		cx, cy := float64(size)/2, float64(size)/2

		dc.SetColor(color.White)
		dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// pickColor derives a stable palette index from the user id so regenerating
// an avatar keeps the same background.
func (as *avatarService) pickColor(id uuid.UUID) color.NRGBA {
	if id == uuid.Nil {
		return as.bgColors[rand.Intn(len(as.bgColors))]
	}
	var sum int
	for _, b := range id {
		sum += int(b)
	}
	return as.bgColors[sum%len(as.bgColors)]
}

func computeInitials(displayName string) string {
	fields := strings.Fields(strings.TrimSpace(displayName))
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(fields[0][:1])
	default:
		return strings.ToUpper(fields[0][:1]) + strings.ToUpper(fields[len(fields)-1][:1])
	}
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
