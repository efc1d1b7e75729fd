package authz

import "errors"

// Actor is the authenticated caller, passed explicitly into every core
// call. Never read role or company from ambient state.
type Actor struct {
	ID        int64
	RoleID    int
	CompanyID *int64
}

// ScopeKind selects how queries are filtered for an actor.
type ScopeKind int

const (
	// AllCompanies: super role, no tenant filter.
	AllCompanies ScopeKind = iota
	// SingleCompany: tenant-bound actor, filter on Scope.CompanyID.
	SingleCompany
	// OwnRecordsOnly: privileged but unaffiliated actor; only records the
	// actor created or is assigned to.
	OwnRecordsOnly
)

type Scope struct {
	Kind      ScopeKind
	CompanyID int64 // set when Kind == SingleCompany
}

// ErrNoCompanySelected: a company-bound role has no current company. The
// handler treats this as a precondition failure (select a company first),
// not a recoverable core error.
var ErrNoCompanySelected = errors.New("no company selected")

// ResolveScope derives the visibility scope for an actor. No side effects.
func ResolveScope(actor Actor) (Scope, error) {
	if IsSuperRole(actor.RoleID) {
		return Scope{Kind: AllCompanies}, nil
	}
	if actor.CompanyID != nil {
		return Scope{Kind: SingleCompany, CompanyID: *actor.CompanyID}, nil
	}
	if IsSpecialRole(actor.RoleID) {
		return Scope{Kind: OwnRecordsOnly}, nil
	}
	return Scope{}, ErrNoCompanySelected
}
