package mediastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// Store persists generated media (avatars, covers) and hands back public URLs.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	// Root is the on-disk directory served at the public base URL.
	Root() string
}

type localStore struct {
	log     *logger.Logger
	root    string
	baseURL string
}

// NewLocalStore writes media under MEDIA_ROOT and serves it at MEDIA_BASE_URL.
func NewLocalStore(log *logger.Logger) (Store, error) {
	root := strings.TrimSpace(os.Getenv("MEDIA_ROOT"))
	if root == "" {
		root = "./media"
	}
	baseURL := strings.TrimSpace(os.Getenv("MEDIA_BASE_URL"))
	if baseURL == "" {
		baseURL = "/media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &localStore{
		log:     log.With("component", "mediastore"),
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (ls *localStore) Save(ctx context.Context, key string, r io.Reader) error {
	path, err := ls.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	// Write to a temp file first so readers never see partial content.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write media: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close media file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize media file: %w", err)
	}
	return nil
}

func (ls *localStore) Delete(ctx context.Context, key string) error {
	path, err := ls.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

func (ls *localStore) PublicURL(key string) string {
	return ls.baseURL + "/" + strings.TrimLeft(key, "/")
}

func (ls *localStore) Root() string { return ls.root }

func (ls *localStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty media key")
	}
	return filepath.Join(ls.root, clean), nil
}
