package backend

import (
	"context"
	"path/filepath"
	"testing"

	"tracker/internal/config"
)

func TestTypeIsValid(t *testing.T) {
	for _, bt := range Types() {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if Type("postgres").IsValid() {
		t.Error("postgres should not be a valid backend type")
	}
	if Type("").IsValid() {
		t.Error("empty backend type should not be valid")
	}
}

func TestNewSlot(t *testing.T) {
	tmp := t.TempDir()

	cases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory", config.Config{DataBackend: "memory"}, false},
		{"file", config.Config{DataBackend: "file", LedgerFilePath: filepath.Join(tmp, "ledger.json")}, false},
		{"sqlite", config.Config{DataBackend: "sqlite", SQLiteDBPath: filepath.Join(tmp, "tracker.db")}, false},
		{"unknown", config.Config{DataBackend: "postgres"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot, cleanup, err := NewSlot(&tc.cfg, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSlot: %v", err)
			}
			defer cleanup()

			// a fresh slot should load empty without error
			records, err := slot.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(records) != 0 {
				t.Fatalf("fresh slot should be empty, got %d records", len(records))
			}
		})
	}
}
