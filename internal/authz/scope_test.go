package authz

import (
	"errors"
	"testing"
)

func companyRef(id int64) *int64 { return &id }

func TestResolveScope(t *testing.T) {
	cases := []struct {
		name    string
		actor   Actor
		want    ScopeKind
		company int64
		wantErr bool
	}{
		{"super without company", Actor{ID: 1, RoleID: RoleSuperAdmin}, AllCompanies, 0, false},
		{"super with company still sees all", Actor{ID: 1, RoleID: RoleSuperAdmin, CompanyID: companyRef(7)}, AllCompanies, 0, false},
		{"operator with company", Actor{ID: 2, RoleID: RoleOperator, CompanyID: companyRef(7)}, SingleCompany, 7, false},
		{"manager with company", Actor{ID: 3, RoleID: RoleManager, CompanyID: companyRef(9)}, SingleCompany, 9, false},
		{"special with company stays scoped", Actor{ID: 4, RoleID: RoleSpecial, CompanyID: companyRef(5)}, SingleCompany, 5, false},
		{"special without company falls back to own records", Actor{ID: 4, RoleID: RoleSpecial}, OwnRecordsOnly, 0, false},
		{"operator without company is a precondition failure", Actor{ID: 5, RoleID: RoleOperator}, 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, err := ResolveScope(tc.actor)
			if tc.wantErr {
				if !errors.Is(err, ErrNoCompanySelected) {
					t.Fatalf("err = %v, want ErrNoCompanySelected", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope.Kind != tc.want {
				t.Errorf("kind = %v, want %v", scope.Kind, tc.want)
			}
			if scope.CompanyID != tc.company {
				t.Errorf("company = %d, want %d", scope.CompanyID, tc.company)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	if !CanViewTasks(RoleSpecial) || !CanViewTasks(RoleSuperAdmin) {
		t.Error("special and super must see tasks")
	}
	if CanViewTasks(RoleOperator) || CanViewTasks(RoleManager) {
		t.Error("operator and manager must not see tasks")
	}
	if IsSuperRole(RoleSpecial) {
		t.Error("special role stays tenant-scoped")
	}
	if !CanManageEvents(RoleManager) {
		t.Error("manager must manage events")
	}
}
