// Package prefs stores user preferences in a bolt database.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neuroliptica/logger"
	bolt "go.etcd.io/bbolt"
)

const (
	// FileName is the name of the database in the data directory.
	FileName = "prefs.db"

	metaBucket = "meta"
	themeKey   = "theme"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	ErrClosed       = errors.New("preferences store closed")
	ErrInvalidTheme = errors.New("invalid theme")
)

var PrefsLogger = logger.MakeLogger("prefs").BindToDefault()

type Store struct {
	db     *bolt.DB
	system func() string
}

// Option configures a Store.
type Option func(*Store)

// WithSystemTheme sets the function that reports the system theme, which is
// used while no theme is stored. The default is DesktopTheme.
func WithSystemTheme(fn func() string) Option {
	return func(s *Store) { s.system = fn }
}

// Open opens the preferences database in dir, creating it if needed.
func Open(dir string, options ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	file := filepath.Join(dir, FileName)
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("can't open preferences: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	PrefsLogger.Logf("preferences opened: %s", file)
	s := &Store{db: db, system: DesktopTheme}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Theme returns the stored theme. If none is stored, the system theme is used.
func (s *Store) Theme() (string, error) {
	v, err := s.get(themeKey)
	if err != nil {
		return "", err
	}
	if v == "" {
		return s.system(), nil
	}
	return v, nil
}

// SetTheme stores the theme.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w %q", ErrInvalidTheme, theme)
	}
	return s.put(themeKey, theme)
}

func (s *Store) get(key string) (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}
	var v string
	err := s.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(metaBucket))
		if bk == nil {
			return errors.New("meta bucket missing")
		}
		v = string(bk.Get([]byte(key)))
		return nil
	})
	return v, err
}

func (s *Store) put(key, value string) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(metaBucket))
		if bk == nil {
			return errors.New("meta bucket missing")
		}
		return bk.Put([]byte(key), []byte(value))
	})
}

// DesktopTheme reports the color scheme of a GTK desktop session. Themes
// named like "Adwaita:dark" select the dark theme.
func DesktopTheme() string {
	if strings.Contains(strings.ToLower(os.Getenv("GTK_THEME")), ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}
