package models

// Role is the account kind chosen at registration.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// User represents the authenticated account as returned by the profile endpoint
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"is_verified,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

func (u *User) IsSeller() bool { return u != nil && u.Role == RoleSeller }

func (u *User) IsBuyer() bool { return u != nil && u.Role == RoleBuyer }

// TokenPair is the login response and the refresh request/response body.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// LoginInput accepts a username, email or phone as identifier.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// RegisterResult carries tokens and the created profile in one response.
type RegisterResult struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
