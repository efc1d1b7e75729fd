package repositories

import (
	"context"
	"database/sql"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, role_id, company_id,
       telegram_chat_id, notify_by_email`

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.User, error) {
	return r.many(ctx, `SELECT `+userColumns+` FROM users WHERE company_id=$1 ORDER BY full_name`, companyID)
}

func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	return r.many(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name`)
}

func (r *userRepository) one(ctx context.Context, query string, arg any) (*models.User, error) {
	u := &models.User{}
	var chatID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CompanyID,
		&chatID, &u.NotifyByEmail,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.TelegramChatID = chatID.Int64
	return u, nil
}

func (r *userRepository) many(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var chatID sql.NullInt64
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CompanyID,
			&chatID, &u.NotifyByEmail,
		); err != nil {
			return nil, err
		}
		u.TelegramChatID = chatID.Int64
		out = append(out, u)
	}
	return out, rows.Err()
}
