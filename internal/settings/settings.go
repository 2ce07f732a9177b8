// Package settings keeps the calendar settings in a YAML file, hands out
// snapshots of them and reloads them when the file changes.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/planner"
	"github.com/starford/weeks/pkg/config"
)

// PairFile is a calendar and language as written in the settings file.
type PairFile struct {
	Type     string `yaml:"type" json:"type"`
	Language string `yaml:"language" json:"language"`
}

// Validate validates the pair.
func (p *PairFile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Type, validation.Required, validation.In(anys(calendar.VariantNames())...)),
		validation.Field(&p.Language, validation.Required, validation.In(anys(calendar.LanguageCodes())...)),
	)
}

func (p PairFile) pair() (planner.Pair, error) {
	v, err := calendar.ParseVariant(p.Type)
	if err != nil {
		return planner.Pair{}, err
	}
	lang, err := calendar.ParseLanguage(p.Language)
	if err != nil {
		return planner.Pair{}, err
	}
	return planner.Pair{Variant: v, Language: lang}, nil
}

// File is the on-disk form of the calendar settings.
type File struct {
	Main         PairFile  `yaml:"main" json:"main"`
	StartWeekday string    `yaml:"start_weekday" json:"start_weekday"`
	Secondary    *PairFile `yaml:"secondary,omitempty" json:"secondary,omitempty"`
}

// Validate validates the settings file.
func (f *File) Validate() error {
	if err := f.Main.Validate(); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	if f.Secondary != nil {
		if err := f.Secondary.Validate(); err != nil {
			return fmt.Errorf("secondary: %w", err)
		}
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.StartWeekday, validation.Required, validation.In(anys(calendar.WeekdayCodes())...)),
	)
}

// Settings converts the file into planner settings.
func (f *File) Settings() (planner.Settings, error) {
	if err := f.Validate(); err != nil {
		return planner.Settings{}, err
	}
	main, err := f.Main.pair()
	if err != nil {
		return planner.Settings{}, err
	}
	start, err := calendar.ParseWeekday(f.StartWeekday)
	if err != nil {
		return planner.Settings{}, err
	}
	s := planner.Settings{Main: main, StartWeekday: start}
	if f.Secondary != nil {
		sec, err := f.Secondary.pair()
		if err != nil {
			return planner.Settings{}, err
		}
		s.Secondary = &sec
	}
	return s, nil
}

// FromSettings returns the file form of s.
func FromSettings(s planner.Settings) File {
	f := File{
		Main:         PairFile{Type: s.Main.Variant.String(), Language: s.Main.Language.Code()},
		StartWeekday: s.StartWeekday.String(),
	}
	if s.Secondary != nil {
		f.Secondary = &PairFile{Type: s.Secondary.Variant.String(), Language: s.Secondary.Language.Code()}
	}
	return f
}

// Equal reports whether a and b describe the same settings.
func Equal(a, b planner.Settings) bool {
	if a.Main != b.Main || a.StartWeekday != b.StartWeekday {
		return false
	}
	if a.Secondary == nil || b.Secondary == nil {
		return a.Secondary == nil && b.Secondary == nil
	}
	return *a.Secondary == *b.Secondary
}

func anys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ChangeCallback is called with the new settings after every change.
type ChangeCallback func(planner.Settings)

// Manager owns the settings file and the current snapshot.
type Manager struct {
	path   string
	logger *slog.Logger
	cur    atomic.Pointer[planner.Settings]

	mu       sync.Mutex // serializes writes and reloads
	onChange ChangeCallback
}

var _ planner.SettingsSource = (*Manager)(nil)

// Open loads the settings file at path, creating it with defaults when it does not exist.
func Open(path string, defaults planner.Settings, logger *slog.Logger) (*Manager, error) {
	m := &Manager{path: path, logger: logger}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f := FromSettings(defaults)
		if err := config.Save(path, &f); err != nil {
			return nil, fmt.Errorf("settings: create %s: %w", path, err)
		}
		logger.Info("settings: created default file", slog.String("path", path))
	}

	s, err := m.read()
	if err != nil {
		return nil, err
	}
	m.cur.Store(&s)
	return m, nil
}

// Path returns the settings file path.
func (m *Manager) Path() string { return m.path }

// Current implements planner.SettingsSource.
func (m *Manager) Current() planner.Settings {
	return *m.cur.Load()
}

// OnChange registers cb to be called after each change. It replaces any previous callback.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = cb
}

// Update validates f, writes it to disk and swaps it in.
func (m *Manager) Update(f File) (planner.Settings, error) {
	s, err := f.Settings()
	if err != nil {
		return planner.Settings{}, fmt.Errorf("settings: %v: %w", err, apperr.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := config.Save(m.path, &f); err != nil {
		return planner.Settings{}, fmt.Errorf("settings: save: %w", err)
	}
	m.swap(s)
	return s, nil
}

// Reload re-reads the file and swaps it in when it differs from the current
// settings. An invalid file keeps the current settings.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.read()
	if err != nil {
		return err
	}
	if Equal(s, m.Current()) {
		return nil
	}
	m.swap(s)
	return nil
}

func (m *Manager) read() (planner.Settings, error) {
	var f File
	if err := config.Load(m.path, &f); err != nil {
		return planner.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return f.Settings()
}

// swap must be called with mu held.
func (m *Manager) swap(s planner.Settings) {
	m.cur.Store(&s)
	m.logger.Info("settings: applied",
		slog.String("main", s.Main.Variant.String()),
		slog.String("language", s.Main.Language.Code()),
		slog.String("start_weekday", s.StartWeekday.String()))
	if m.onChange != nil {
		m.onChange(s)
	}
}
