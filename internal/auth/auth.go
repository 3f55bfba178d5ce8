package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/nakachan-ing/todo-cli/internal/model"
	"github.com/nakachan-ing/todo-cli/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("username must be non-empty printable ASCII without spaces")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

// Directory is the part of the credential store signup and login need.
type Directory interface {
	LoadAll() []model.Account
	SaveAll(accounts []model.Account) error
}

type Service struct {
	dir  Directory
	cost int
}

func NewService(dir Directory, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{dir: dir, cost: cost}
}

// Signup appends a new account after checking the username is free.
func (s *Service) Signup(username, password string) (model.Account, error) {
	if err := ValidateUsername(username); err != nil {
		return model.Account{}, err
	}
	if password == "" {
		return model.Account{}, ErrEmptyPassword
	}

	accounts := s.dir.LoadAll()
	if _, found := store.FindByUsername(accounts, username); found {
		return model.Account{}, ErrUserExists
	}

	hashed, err := HashPassword(password, s.cost)
	if err != nil {
		return model.Account{}, err
	}

	account := model.Account{Username: username, Credential: hashed}
	if err := s.dir.SaveAll(append(accounts, account)); err != nil {
		return model.Account{}, fmt.Errorf("failed to save account: %w", err)
	}
	return account, nil
}

func (s *Service) Login(username, password string) (model.Account, error) {
	account, found := store.FindByUsername(s.dir.LoadAll(), username)
	if !found || !VerifyPassword(account.Credential, password) {
		return model.Account{}, ErrInvalidCredentials
	}
	return account, nil
}

func ValidateUsername(username string) error {
	if username == "" || strings.ContainsAny(username, " \t\r\n") || !govalidator.IsPrintableASCII(username) {
		return ErrInvalidUsername
	}
	return nil
}

func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}
