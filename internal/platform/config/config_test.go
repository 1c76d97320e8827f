package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/feedback360")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("expected default migrations dir, got %s", cfg.MigrationsDir)
	}
	if !cfg.RunMigrations {
		t.Fatal("expected migrations enabled by default")
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default smtp port 587, got %d", cfg.SMTPPort)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://localhost/feedback360",
		Environment: "production",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
}

func TestValidateEmailNeedsHost(t *testing.T) {
	cfg := Config{
		DatabaseURL:  "postgres://localhost/feedback360",
		EmailEnabled: true,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for EMAIL_ENABLED without SMTP_HOST")
	}
}
