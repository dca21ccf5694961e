package db

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_seed_lookups.up.sql": {Data: []byte("INSERT ...")},
		"0001_init.up.sql":         {Data: []byte("CREATE ...")},
		"0001_init.down.sql":       {Data: []byte("DROP ...")},
		"README.md":                {Data: []byte("notes")},
		"archive/0000_old.up.sql":  {Data: []byte("old")},
	}

	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{"fresh database", map[string]bool{}, []string{"0001_init", "0002_seed_lookups"}},
		{"partially applied", map[string]bool{"0001_init": true}, []string{"0002_seed_lookups"}},
		{"up to date", map[string]bool{"0001_init": true, "0002_seed_lookups": true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PendingMigrations(fsys, tt.applied)
			if err != nil {
				t.Fatalf("PendingMigrations: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PendingMigrations = %v, want %v", got, tt.want)
			}
		})
	}
}
