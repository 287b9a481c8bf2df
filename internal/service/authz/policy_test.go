package authz

import (
	"testing"

	"tally/internal/domain/models"
)

func TestLoadPolicyTable(t *testing.T) {
	table, err := LoadPolicyTable()
	if err != nil {
		t.Fatalf("LoadPolicyTable: %v", err)
	}

	tests := []struct {
		operation      string
		wantEntity     EntityKind
		wantPermission models.Permission
		wantIDPath     string
	}{
		{"getChecklist", EntityChecklist, models.PermissionRead, "id"},
		{"updateChecklist", EntityChecklist, models.PermissionUpdate, "input.id"},
		{"deleteChecklist", EntityChecklist, models.PermissionDelete, "input.id"},
		{"listSections", EntityChecklist, models.PermissionRead, "filter.checklistId.eq"},
		{"createSection", EntityChecklist, models.PermissionCreate, "input.checklistId"},
		{"updateSection", EntitySection, models.PermissionUpdate, "input.id"},
		{"deleteSection", EntitySection, models.PermissionDelete, "input.id"},
		{"listItems", EntitySection, models.PermissionRead, "filter.sectionId.eq"},
		{"createItem", EntitySection, models.PermissionCreate, "input.sectionId"},
		{"updateItem", EntityItem, models.PermissionUpdate, "input.id"},
		{"deleteItem", EntityItem, models.PermissionDelete, "input.id"},
	}

	if table.Len() != len(tests) {
		t.Errorf("table has %d operations, want %d", table.Len(), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			policy, ok := table.Lookup(tt.operation)
			if !ok {
				t.Fatalf("operation %q missing from table", tt.operation)
			}
			if policy.Entity != tt.wantEntity {
				t.Errorf("Entity = %q, want %q", policy.Entity, tt.wantEntity)
			}
			if policy.Permission != tt.wantPermission {
				t.Errorf("Permission = %q, want %q", policy.Permission, tt.wantPermission)
			}
			if policy.IDPath != tt.wantIDPath {
				t.Errorf("IDPath = %q, want %q", policy.IDPath, tt.wantIDPath)
			}
		})
	}

	if _, ok := table.Lookup("createChecklist"); ok {
		t.Error("createChecklist is special-cased in the router and must not be table-driven")
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]any{
		"id": "top",
		"input": map[string]any{
			"checklistId": "c1",
			"count":       float64(3),
		},
		"filter": map[string]any{
			"sectionId": map[string]any{"eq": "s1"},
		},
	}

	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "top level", path: []string{"id"}, want: "top"},
		{name: "nested", path: []string{"input", "checklistId"}, want: "c1"},
		{name: "deep", path: []string{"filter", "sectionId", "eq"}, want: "s1"},
		{name: "missing key", path: []string{"input", "nope"}, want: ""},
		{name: "missing branch", path: []string{"ghost", "id"}, want: ""},
		{name: "non-string leaf", path: []string{"input", "count"}, want: ""},
		{name: "path through a leaf", path: []string{"id", "deeper"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringArg(args, tt.path...); got != tt.want {
				t.Errorf("stringArg(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]any{
		"filter": map[string]any{
			"isPublic": map[string]any{"eq": true},
			"archived": map[string]any{"eq": "true"},
		},
	}

	if !boolArg(args, "filter", "isPublic", "eq") {
		t.Error("true leaf should read as true")
	}
	if boolArg(args, "filter", "archived", "eq") {
		t.Error("string leaf must not coerce to bool")
	}
	if boolArg(args, "filter", "missing", "eq") {
		t.Error("missing path should read as false")
	}
}
