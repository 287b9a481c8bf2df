package models

import (
	"testing"
	"time"
)

func TestRoleCan(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{name: "owner can read", role: RoleOwner, permission: PermissionRead, want: true},
		{name: "owner can delete", role: RoleOwner, permission: PermissionDelete, want: true},
		{name: "owner can share", role: RoleOwner, permission: PermissionShare, want: true},
		{name: "editor can read", role: RoleEditor, permission: PermissionRead, want: true},
		{name: "editor can create", role: RoleEditor, permission: PermissionCreate, want: true},
		{name: "editor can update", role: RoleEditor, permission: PermissionUpdate, want: true},
		{name: "editor can subscribe", role: RoleEditor, permission: PermissionSubscribe, want: true},
		{name: "editor cannot delete", role: RoleEditor, permission: PermissionDelete, want: false},
		{name: "editor cannot share", role: RoleEditor, permission: PermissionShare, want: false},
		{name: "viewer can read", role: RoleViewer, permission: PermissionRead, want: true},
		{name: "viewer can subscribe", role: RoleViewer, permission: PermissionSubscribe, want: true},
		{name: "viewer cannot create", role: RoleViewer, permission: PermissionCreate, want: false},
		{name: "viewer cannot update", role: RoleViewer, permission: PermissionUpdate, want: false},
		{name: "viewer cannot delete", role: RoleViewer, permission: PermissionDelete, want: false},
		{name: "viewer cannot share", role: RoleViewer, permission: PermissionShare, want: false},
		{name: "unknown role has no permissions", role: Role("ADMIN"), permission: PermissionRead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Can(tt.permission); got != tt.want {
				t.Errorf("Role(%s).Can(%s) = %v, want %v", tt.role, tt.permission, got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{input: "OWNER", want: RoleOwner, wantOK: true},
		{input: "EDITOR", want: RoleEditor, wantOK: true},
		{input: "VIEWER", want: RoleViewer, wantOK: true},
		{input: "owner", wantOK: false},
		{input: "ADMIN", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseRole(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSharePendingAndExpiry(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	pending := Share{ChecklistID: "c1", UserID: PendingUserPrefix + "tok", Role: "VIEWER"}
	if !pending.IsPending() {
		t.Error("share with invite placeholder userID should be pending")
	}

	claimed := Share{ChecklistID: "c1", UserID: "bob", Role: "VIEWER"}
	if claimed.IsPending() {
		t.Error("share with real userID should not be pending")
	}

	expired := Share{ChecklistID: "c1", UserID: "bob", Role: "VIEWER", ExpiresAt: &past}
	if !expired.IsExpired(now) {
		t.Error("share with past expiresAt should be expired")
	}

	live := Share{ChecklistID: "c1", UserID: "bob", Role: "VIEWER", ExpiresAt: &future}
	if live.IsExpired(now) {
		t.Error("share with future expiresAt should not be expired")
	}

	if claimed.IsExpired(now) {
		t.Error("share without expiresAt should never expire")
	}
}

func TestShareValidate(t *testing.T) {
	valid := Share{ChecklistID: "c1", UserID: "bob", Role: "EDITOR", SharedBy: "alice"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid share failed validation: %v", err)
	}

	badRole := Share{ChecklistID: "c1", UserID: "bob", Role: "SUPERUSER", SharedBy: "alice"}
	if err := badRole.Validate(); err == nil {
		t.Error("share with unknown role should fail validation")
	}

	missing := Share{UserID: "bob", Role: "EDITOR", SharedBy: "alice"}
	if err := missing.Validate(); err == nil {
		t.Error("share without checklistId should fail validation")
	}
}
