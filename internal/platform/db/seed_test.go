package db

import (
	"context"
	"testing"

	"idms/internal/platform/config"
)

type fakeSeeder struct {
	calls    int
	email    string
	password string
}

func (f *fakeSeeder) EnsureAdmin(_ context.Context, email, password string) (bool, error) {
	f.calls++
	f.email = email
	f.password = password
	return f.calls == 1, nil
}

func TestSeed(t *testing.T) {
	seeder := &fakeSeeder{}
	cfg := config.Config{SeedAdminEmail: " admin@idms.local ", SeedAdminPassword: "ChangeMe123!"}
	if err := Seed(context.Background(), seeder, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeder.email != "admin@idms.local" || seeder.password != "ChangeMe123!" {
		t.Fatalf("unexpected seed call %+v", seeder)
	}

	if err := Seed(context.Background(), seeder, config.Config{SeedAdminEmail: "admin@idms.local"}); err == nil {
		t.Fatal("expected error without a password")
	}
	if err := Seed(context.Background(), seeder, config.Config{}); err != nil {
		t.Fatalf("no email means nothing to seed, got %v", err)
	}
	if seeder.calls != 1 {
		t.Fatalf("expected one EnsureAdmin call, got %d", seeder.calls)
	}
}
