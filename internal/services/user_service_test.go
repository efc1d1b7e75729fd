package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

type fakeUserRepo struct {
	users []models.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(ctx context.Context, companyID int64) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	return append([]models.User{}, r.users...), nil
}

func staffedRepo() *fakeUserRepo {
	return &fakeUserRepo{users: []models.User{
		{ID: 1, FullName: "Ada", Email: "ada@acme.test", CompanyID: companyRef(7)},
		{ID: 2, FullName: "Ben", Email: "ben@acme.test", CompanyID: companyRef(7)},
		{ID: 3, FullName: "Cleo", Email: "cleo@other.test", CompanyID: companyRef(9)},
	}}
}

func TestListAssignable(t *testing.T) {
	svc := NewUserService(staffedRepo())

	// super with no company filter sees everyone
	super := authz.Actor{ID: 42, RoleID: authz.RoleSuperAdmin}
	users, err := svc.ListAssignable(context.Background(), super, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 3 {
		t.Errorf("super unfiltered = %d users, want all 3", len(users))
	}

	// super narrowed to one company
	users, err = svc.ListAssignable(context.Background(), super, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].ID != 3 {
		t.Errorf("super narrowed = %v, want just company 9", users)
	}

	// tenant-bound actors are pinned to their own company regardless of the
	// requested one
	manager := authz.Actor{ID: 1, RoleID: authz.RoleManager, CompanyID: companyRef(7)}
	users, err = svc.ListAssignable(context.Background(), manager, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("manager = %d users, want the 2 company members", len(users))
	}

	// unaffiliated non-super actors have nothing to list against
	if _, err := svc.ListAssignable(context.Background(), authz.Actor{ID: 5, RoleID: authz.RoleManager}, 7); !errors.Is(err, authz.ErrNoCompanySelected) {
		t.Fatalf("err = %v, want ErrNoCompanySelected", err)
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := staffedRepo()
	repo.users[0].PasswordHash = string(hash)
	svc := NewUserService(repo)

	user, err := svc.Authenticate(context.Background(), "ada@acme.test", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 1 {
		t.Errorf("user = %d, want 1", user.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "ada@acme.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@acme.test", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
