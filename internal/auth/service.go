package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

// Role is a client-persisted assertion; the server only hands it out at
// login, it does not gate endpoints.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBasic Role = "basic"
)

var ErrInvalidCredentials = errors.New("feil brukernavn eller passord")

type user struct {
	password string
	role     Role
}

// Service checks logins against the two fixed username/password pairs from
// the environment.
type Service struct {
	log   *logger.Logger
	users map[string]user
}

func NewService(log *logger.Logger) (*Service, error) {
	adminU := strings.TrimSpace(os.Getenv("APP_ADMIN_USERNAME"))
	adminP := os.Getenv("APP_ADMIN_PASSWORD")
	basicU := strings.TrimSpace(os.Getenv("APP_BASIC_USERNAME"))
	basicP := os.Getenv("APP_BASIC_PASSWORD")

	if adminU == "" || adminP == "" || basicU == "" || basicP == "" {
		return nil, errors.New("missing auth environment variables")
	}

	return &Service{
		log: log.With("service", "AuthService"),
		users: map[string]user{
			adminU: {password: adminP, role: RoleAdmin},
			basicU: {password: basicP, role: RoleBasic},
		},
	}, nil
}

// Login returns the role for a valid username/password pair.
func (s *Service) Login(username, password string) (Role, error) {
	u, ok := s.users[username]
	if !ok || u.password != password {
		return "", ErrInvalidCredentials
	}
	return u.role, nil
}
