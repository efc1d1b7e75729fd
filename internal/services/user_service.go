package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
)

type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// ListAssignable returns the users an actor may pick as assignees or
	// participants: company members for a tenant-bound actor; a super role
	// may narrow to one company or, with no company given, list everyone.
	ListAssignable(ctx context.Context, actor authz.Actor, companyID int64) ([]models.User, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) ListAssignable(ctx context.Context, actor authz.Actor, companyID int64) ([]models.User, error) {
	if authz.IsSuperRole(actor.RoleID) {
		if companyID == 0 {
			return s.repo.ListAll(ctx)
		}
		return s.repo.ListByCompany(ctx, companyID)
	}
	if actor.CompanyID == nil {
		return nil, authz.ErrNoCompanySelected
	}
	return s.repo.ListByCompany(ctx, *actor.CompanyID)
}
