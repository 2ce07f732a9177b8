package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

var errNoName = errors.New("name is required")

func (s *sample) Validate() error {
	if s.Name == "" {
		return errNoName
	}
	return nil
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("WEEKS_TEST_NAME", "planner")
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("name: ${WEEKS_TEST_NAME}\nport: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got sample
	if err := Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "planner" || got.Port != 9 {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("port: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got sample
	if err := Load(path, &got); !errors.Is(err, errNoName) {
		t.Errorf("err = %v, want %v", err, errNoName)
	}
}

func TestSave_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "c.yaml")
	if err := Save(path, &sample{Name: "weeks", Port: 8080}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var got sample
	if err := Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "weeks" || got.Port != 8080 {
		t.Errorf("got %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("leftover temp files: %d entries", len(entries))
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := Save(path, &sample{Port: 1}); !errors.Is(err, errNoName) {
		t.Errorf("err = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("invalid config was written")
	}
}

func TestLoadWithDefaults_FallsBack(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yaml")
	if err := os.WriteFile(def, []byte("name: fallback\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got sample
	if err := LoadWithDefaults(filepath.Join(dir, "missing.yaml"), def, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "fallback" {
		t.Errorf("name = %q", got.Name)
	}
}
