package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/config"
	"github.com/imeelinew/paper-library/internal/database/users"
)

// Service handles credential verification and token issuance.
type Service struct {
	users  *users.Repository
	config config.Auth
}

func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// LoginResult is returned to a successfully authenticated caller.
type LoginResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Login verifies the credentials and issues a signed token. Unknown
// usernames and wrong passwords produce the same Unauthorized message so
// the response does not leak which accounts exist.
func (s *Service) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation("Username and password are required")
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, apperr.Internal(err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, apperr.Internal(err)
	}

	identity := Identity{ID: user.ID, Username: user.Username, Role: user.Role}
	token, err := IssueToken(s.config.JWTSecret, identity, s.config.TokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{Token: token, User: identity}, nil
}
