package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/casedoc/internal/template"
)

func sampleTenant(id string) template.Tenant {
	return template.Tenant{
		ID:        id,
		Name:      "Acme",
		Variables: []template.Variable{{ID: "v1", Name: "company", Value: "Acme"}},
		Cases: []template.Case{{
			ID:        "case-1",
			Data:      map[string]string{"name": "Alice"},
			Documents: []template.Document{{ID: "doc-1", Content: "Dear {{name}}"}},
		}},
	}
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Tenants()) != 0 || len(s.SystemVariables()) != 0 {
		t.Fatal("expected empty store")
	}
}

func TestOpen_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddTenant(sampleTenant("t1")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSystemVariables([]template.Variable{{Name: "today", Value: "2024-01-01"}}); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	tn, err := reopened.Tenant("t1")
	if err != nil {
		t.Fatal(err)
	}
	if tn.Name != "Acme" || tn.Cases[0].Data["name"] != "Alice" || tn.Cases[0].Documents[0].Content != "Dear {{name}}" {
		t.Fatalf("tenant = %+v", tn)
	}
	if vars := reopened.SystemVariables(); len(vars) != 1 || vars[0].Value != "2024-01-01" {
		t.Fatalf("system vars = %+v", vars)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should not exist after save")
	}
}

func TestFileStore_TenantIsACopy(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "data.json"))
	if err := s.AddTenant(sampleTenant("t1")); err != nil {
		t.Fatal(err)
	}
	tn, _ := s.Tenant("t1")
	tn.Cases[0].Data["name"] = "Mallory"
	tn.Cases[0].Documents[0].Content = "changed"

	again, _ := s.Tenant("t1")
	if again.Cases[0].Data["name"] != "Alice" || again.Cases[0].Documents[0].Content != "Dear {{name}}" {
		t.Fatal("mutating a returned tenant leaked into the store")
	}

	if err := s.UpdateTenant(tn); err != nil {
		t.Fatal(err)
	}
	again, _ = s.Tenant("t1")
	if again.Cases[0].Documents[0].Content != "changed" {
		t.Fatal("update not applied")
	}
}

func TestFileStore_Errors(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "data.json"))
	if _, err := s.Tenant("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Tenant: %v", err)
	}
	if err := s.UpdateTenant(template.Tenant{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateTenant: %v", err)
	}
	if err := s.DeleteTenant("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteTenant: %v", err)
	}
	if err := s.AddTenant(template.Tenant{}); err == nil {
		t.Fatal("expected error for empty id")
	}
	if err := s.AddTenant(sampleTenant("t1")); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTenant(sampleTenant("t1")); !errors.Is(err, ErrExists) {
		t.Fatalf("duplicate AddTenant: %v", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "data.json"))
	for _, id := range []string{"a", "b", "c"} {
		if err := s.AddTenant(sampleTenant(id)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DeleteTenant("b"); err != nil {
		t.Fatal(err)
	}
	got := s.Tenants()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("tenants = %+v", got)
	}
}

func TestWriteFileAtomic_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := writeFileAtomic(path, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Fatalf("got %q, want %q", data, "new")
	}
}
