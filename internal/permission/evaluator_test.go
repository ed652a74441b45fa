package permission

import (
	"testing"

	"github.com/protrack-app/protrack/internal/shared"
)

func TestHasMasterBypassesMap(t *testing.T) {
	id := &shared.Identity{Role: RoleMaster, Permissions: map[string]string{}}
	for _, area := range []Area{AreaMaterial, AreaUsers, Area("anything")} {
		if !Has(id, area, LevelWrite) {
			t.Fatalf("master denied write on %q", area)
		}
	}
}

func TestHasNilUser(t *testing.T) {
	if Has(nil, AreaMaterial, LevelRead) {
		t.Fatal("nil identity must be denied")
	}
}

func TestHasLevels(t *testing.T) {
	cases := []struct {
		name    string
		granted string
		level   Level
		want    bool
	}{
		{"read satisfies read", "read", LevelRead, true},
		{"write satisfies read", "write", LevelRead, true},
		{"read denies write", "read", LevelWrite, false},
		{"write satisfies write", "write", LevelWrite, true},
		{"none denies read", "none", LevelRead, false},
		{"none denies write", "none", LevelWrite, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := &shared.Identity{
				Role:        RoleEntry,
				Permissions: map[string]string{"material": tc.granted},
			}
			if got := Has(id, AreaMaterial, tc.level); got != tc.want {
				t.Fatalf("granted=%s level=%s: got %v want %v", tc.granted, tc.level, got, tc.want)
			}
		})
	}
}

func TestHasFailsClosedForUnknownArea(t *testing.T) {
	id := &shared.Identity{
		Role:        RoleManager,
		Permissions: map[string]string{"material": "write"},
	}
	if Has(id, Area("warehouse"), LevelRead) {
		t.Fatal("unknown area must fail closed")
	}
	if Has(id, AreaLabor, LevelRead) {
		t.Fatal("unmapped area must fail closed")
	}
}

func TestHasAgreesWithGrantedLevel(t *testing.T) {
	id := &shared.Identity{
		Role:        RoleEntry,
		Permissions: map[string]string{"labor": "read", "invoices": "write", "users": "none"},
	}
	for _, area := range Areas() {
		granted := GrantedLevel(id, area)
		wantRead := granted == LevelRead || granted == LevelWrite
		if got := Has(id, area, LevelRead); got != wantRead {
			t.Fatalf("area %s: read access %v disagrees with granted level %s", area, got, granted)
		}
		if got := Has(id, area, LevelWrite); got != (granted == LevelWrite) {
			t.Fatalf("area %s: write access %v disagrees with granted level %s", area, got, granted)
		}
	}
}

func TestGrantedLevel(t *testing.T) {
	id := &shared.Identity{Role: RoleEntry, Permissions: map[string]string{"labor": "write"}}
	if got := GrantedLevel(id, AreaLabor); got != LevelWrite {
		t.Fatalf("got %s want write", got)
	}
	if got := GrantedLevel(id, AreaInvoices); got != LevelNone {
		t.Fatalf("got %s want none", got)
	}
	if got := GrantedLevel(nil, AreaLabor); got != LevelNone {
		t.Fatalf("nil identity: got %s want none", got)
	}
}
