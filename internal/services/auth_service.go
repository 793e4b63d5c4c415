package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/domain"
	"inkwell/internal/repos"
	"inkwell/internal/validate"
)

type AuthService struct {
	Users *repos.UserRepo
}

// Signup creates the account and its profile in one transaction. The
// profile is written here, explicitly, rather than by any hook on user
// creation.
func (s *AuthService) Signup(f validate.Signup) (*domain.User, error) {
	if _, err := s.Users.ByEmail(f.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: strings.ToLower(f.Email),
		Name:  f.Name,
		Hash:  string(hash),
		Role:  "USER",
	}
	p := domain.Profile{
		UserID:       u.ID,
		PhoneNumber:  f.PhoneNumber,
		AddressLine1: f.AddressLine1,
		AddressLine2: f.AddressLine2,
		City:         f.City,
		PostalCode:   f.PostalCode,
		Country:      f.Country,
	}
	if err := s.Users.CreateWithProfile(u, p); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Profile returns the shipping/contact details used to prefill the
// checkout form.
func (s *AuthService) Profile(userID string) (domain.Profile, error) {
	return s.Users.Profile(userID)
}
