package usecase

import (
	"errors"
	"net/mail"
	"regexp"
	"time"

	"velvetroom/internal/entity"
	"velvetroom/internal/repo/persistent"
	"velvetroom/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordMinLength = 8
	minimumAge        = 18
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)

type AuthUseCase interface {
	Register(username, email, password, dateOfBirth string) (*entity.User, error)
	Login(login, password string) (*entity.User, error)
	GetUser(userID int) (*entity.User, error)
	Profile(userID int) (*entity.Profile, error)
}

type authUseCase struct {
	users    persistent.UserRepository
	payments persistent.PaymentRepository
	logger   *logger.Logger
}

func NewAuthUseCase(users persistent.UserRepository, payments persistent.PaymentRepository, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		users:    users,
		payments: payments,
		logger:   logger,
	}
}

func (uc *authUseCase) Register(username, email, password, dateOfBirth string) (*entity.User, error) {
	if username == "" || email == "" || password == "" || dateOfBirth == "" {
		return nil, invalid("All fields are required")
	}
	if !usernamePattern.MatchString(username) {
		return nil, invalid("Username must be 3-50 characters (letters, numbers, _, -)")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("Invalid email address")
	}
	if len(password) < passwordMinLength {
		return nil, invalid("Password must be at least 8 characters")
	}
	if !validDateOfBirth(dateOfBirth) {
		return nil, invalid("Invalid date of birth or you must be at least 18 years old")
	}

	if _, err := uc.users.GetByUsername(username); err == nil {
		return nil, ErrUserExists
	}
	if _, err := uc.users.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, err
	}

	user := &entity.User{
		Username:    username,
		Email:       email,
		Password:    string(hashedPassword),
		DateOfBirth: dateOfBirth,
		IsActive:    true,
	}

	if err := uc.users.Create(user); err != nil {
		// The unique indexes catch the register/register race the pre-checks
		// cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) Login(login, password string) (*entity.User, error) {
	if login == "" || password == "" {
		return nil, invalid("Username and password are required")
	}

	user, err := uc.users.GetByLogin(login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := uc.users.UpdateLastLogin(user.ID); err != nil {
		uc.logger.Warn("Failed to update last login for user %d: %v", user.ID, err)
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) GetUser(userID int) (*entity.User, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) Profile(userID int) (*entity.Profile, error) {
	user, err := uc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	hasAccess, err := uc.payments.HasCompletedPurchase(userID)
	if err != nil {
		return nil, err
	}

	tipCount, tipTotal, err := uc.payments.UserTipTotals(userID)
	if err != nil {
		return nil, err
	}

	return &entity.Profile{
		User:             *user,
		HasGalleryAccess: hasAccess,
		TipsSent:         tipCount,
		TotalTippedCents: tipTotal,
	}, nil
}

func validDateOfBirth(dob string) bool {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return false
	}

	now := time.Now()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age >= minimumAge
}
