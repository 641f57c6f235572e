package store

import (
	"context"
	"testing"

	"github.com/futofind/futofind/internal/db"
)

func TestSettingsLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, ok, err := GetSetting(ctx, database, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if ok {
		t.Fatal("expected missing setting")
	}

	if err := SetSetting(ctx, database, "theme", "light"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := SetSetting(ctx, database, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	value, ok, err := GetSetting(ctx, database, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if !ok || value != "dark" {
		t.Fatalf("expected dark, got %q (ok=%v)", value, ok)
	}

	if err := DeleteSetting(ctx, database, "theme"); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	if err := DeleteSetting(ctx, database, "theme"); err != nil {
		t.Fatalf("DeleteSetting twice: %v", err)
	}
	if _, ok, _ := GetSetting(ctx, database, "theme"); ok {
		t.Error("expected setting removed")
	}
}
