package prefs

import (
	"errors"
	"testing"
)

func TestTheme(t *testing.T) {
	t.Setenv("GTK_THEME", "")
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if th, err := s.Theme(); err != nil || th != ThemeLight {
		t.Fatalf("default theme %q, %v", th, err)
	}
	if err := s.SetTheme(ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTheme("purple"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("wrong error for invalid theme: %v", err)
	}
	s.Close()

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if th, _ := s.Theme(); th != ThemeDark {
		t.Fatalf("theme not persisted, got %q", th)
	}
}

func TestClosed(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, err := s.Theme(); err != ErrClosed {
		t.Fatalf("Theme after Close: %v", err)
	}
	if err := s.SetTheme(ThemeLight); err != ErrClosed {
		t.Fatalf("SetTheme after Close: %v", err)
	}
}

func TestDesktopTheme(t *testing.T) {
	tests := []struct {
		gtk, want string
	}{
		{"", ThemeLight},
		{"Adwaita", ThemeLight},
		{"Adwaita:dark", ThemeDark},
		{"Yaru-Dark", ThemeDark},
	}
	for _, test := range tests {
		t.Setenv("GTK_THEME", test.gtk)
		if got := DesktopTheme(); got != test.want {
			t.Errorf("GTK_THEME=%q: got %s, want %s", test.gtk, got, test.want)
		}
	}
}

func TestSystemThemeOption(t *testing.T) {
	s, err := Open(t.TempDir(), WithSystemTheme(func() string { return ThemeDark }))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if th, _ := s.Theme(); th != ThemeDark {
		t.Fatalf("system theme not used, got %q", th)
	}
	if err := s.SetTheme(ThemeLight); err != nil {
		t.Fatal(err)
	}
	if th, _ := s.Theme(); th != ThemeLight {
		t.Fatalf("stored theme not preferred, got %q", th)
	}
}
