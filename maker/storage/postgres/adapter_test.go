package postgres

import (
	"testing"

	"github.com/FilipeMCruz/playlist-maker/maker/storage"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlbuilder"
)

func TestValidSchema(t *testing.T) {
	for _, ok := range []string{"music", "_lib", "Lib2"} {
		if !ValidSchema(ok) {
			t.Errorf("expected %q to be valid", ok)
		}
	}
	for _, bad := range []string{"", "2lib", "my-lib", `x"; DROP`} {
		if ValidSchema(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestAdapterIdentity(t *testing.T) {
	a := New("postgres://localhost/music", "library")
	if a.Backend() != storage.BackendPostgres {
		t.Fatalf("unexpected backend %s", a.Backend())
	}
	if a.PlaceholderStyle() != sqlbuilder.PlaceholderDollar {
		t.Fatalf("expected dollar placeholders")
	}
	if a.LibraryID() != "postgres:library" {
		t.Fatalf("unexpected library id %q", a.LibraryID())
	}
}
