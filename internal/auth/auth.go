package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/timshannon/bolthold"
	"golang.org/x/crypto/bcrypt"
)

const errDuplicateKey = "This Key already exists in this bolthold for this type"

var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password required")
)

type User struct {
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Service checks and stores credentials. It is deliberately unrelated
// to the catalog and keeps its own database file.
type Service struct {
	store *bolthold.Store
}

func Open(path string, mode os.FileMode) (*Service, error) {
	store, err := bolthold.Open(path, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("opening user database: %w", err)
	}
	return &Service{store: store}, nil
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.store.Insert(username, &user)
	if err != nil && err.Error() == errDuplicateKey {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return &user, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user User
	if err := s.store.Get(username, &user); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *Service) Close() error {
	return s.store.Close()
}
