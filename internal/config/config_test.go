package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppURL != "https://apexgne.vercel.app/" {
		t.Errorf("unexpected app url %q", cfg.AppURL)
	}
	if cfg.Encoder != encoder.Default {
		t.Errorf("unexpected encoder %q", cfg.Encoder)
	}

	events := cfg.Profile(domain.KindEvents)
	if events.OutputDir != "qr_codes" || events.Caption.Enabled || events.RoundMarkers {
		t.Errorf("unexpected events profile %+v", events)
	}
	if events.Size != 0 || events.CornerRadius != 0 {
		t.Errorf("events codes keep their drawn size, got size %d corner %g", events.Size, events.CornerRadius)
	}
	if lvl, _ := events.ErrorLevel(); lvl != encoder.LevelL {
		t.Errorf("events level = %v, want L", lvl)
	}

	students := cfg.Profile(domain.KindStudents)
	style := students.Style()
	if students.OutputDir != "student_qr_codes" || style.Size != 1000 || style.CornerRadius != 50 {
		t.Errorf("unexpected students profile %+v", students)
	}
	if !style.RoundMarkers || !style.Caption.Enabled || style.Caption.Height != 120 || style.Caption.FontSize != 48 {
		t.Errorf("unexpected students style %+v", style)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "eventqr.yaml")
	yaml := `
app_url: https://fest.example.org/
encoder: skip2
profiles:
  students:
    size: 600
    caption:
      height: 90
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EVENTQR_PROFILES_STUDENTS_SIZE", "800")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("encoder", "", "")
	flags.String("unrelated", "", "")
	if err := flags.Parse([]string{"--encoder", "rsc"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{ConfigFile: cfgPath, Flags: flags})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppURL != "https://fest.example.org/" {
		t.Errorf("file value not applied: %q", cfg.AppURL)
	}
	if cfg.Encoder != "rsc" {
		t.Errorf("flag should win over file, got %q", cfg.Encoder)
	}
	if got := cfg.Profiles.Students.Size; got != 800 {
		t.Errorf("env should win over file, got %d", got)
	}
	if got := cfg.Profiles.Students.Caption.Height; got != 90 {
		t.Errorf("nested file value not applied, got %d", got)
	}
	if got := cfg.Profiles.Students.Caption.FontSize; got != 48 {
		t.Errorf("untouched default lost, got %g", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("EVENTQR_LOGO_DIR", "placeholder")
	os.Unsetenv("EVENTQR_LOGO_DIR")

	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("EVENTQR_LOGO_DIR=/srv/logos\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{EnvFile: envPath})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogoDir != "/srv/logos" {
		t.Fatalf("expected logo dir from .env, got %q", cfg.LogoDir)
	}

	if _, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"relative app url", map[string]string{"EVENTQR_APP_URL": "apexgne.vercel.app"}},
		{"unknown encoder", map[string]string{"EVENTQR_ENCODER": "qart"}},
		{"bad level", map[string]string{"EVENTQR_PROFILES_EVENTS_LEVEL": "Z"}},
		{"bad size", map[string]string{"EVENTQR_PROFILES_STUDENTS_SIZE": "10"}},
		{"no columns", map[string]string{"EVENTQR_SHEET_COLUMNS": "0"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load(Options{})
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid_config, got %v", err)
			}
		})
	}

	if _, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
