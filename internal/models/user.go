package models

type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	RoleID       int    `json:"role_id"`
	CompanyID    *int64 `json:"company_id,omitempty"`

	// notification channels
	TelegramChatID int64 `json:"-"`
	NotifyByEmail  bool  `json:"notify_by_email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
