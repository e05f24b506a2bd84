package services

import (
	"errors"
	"fmt"

	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/daytracker/daytracker-api/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNameTaken = errors.New("name already taken")
	// ErrInvalidCredentials covers both unknown name and wrong password so
	// sign-in failures cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoChanges          = errors.New("no changes supplied")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// SignUp validates the name and password policy, rejects duplicate names
// and persists the new user with a bcrypt hash.
func (s *UserService) SignUp(name, password string) (*models.User, error) {
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Password: string(hash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// SignIn verifies the name/password pair.
func (s *UserService) SignIn(name, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Account returns the self-lookup view, including the owned chart count.
func (s *UserService) Account(userID uuid.UUID) (*dto.AccountResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var chartCount int64
	if err := s.db.Model(&models.Chart{}).Where("user_id = ?", userID).Count(&chartCount).Error; err != nil {
		return nil, err
	}

	return &dto.AccountResponse{
		ID:         user.ID,
		Name:       user.Name,
		ChartCount: chartCount,
		CreatedAt:  user.CreatedAt,
	}, nil
}

// UpdateAccount changes the name and/or password after re-verifying the
// current password. At least one new field must be supplied.
func (s *UserService) UpdateAccount(userID uuid.UUID, currentPassword string, newName, newPassword *string) error {
	if newName == nil && newPassword == nil {
		return ErrNoChanges
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	updates := map[string]interface{}{}

	if newName != nil && *newName != user.Name {
		if err := validation.Name(*newName); err != nil {
			return err
		}
		var existing models.User
		if err := s.db.Where("name = ?", *newName).First(&existing).Error; err == nil {
			return ErrNameTaken
		}
		updates["name"] = *newName
	}

	if newPassword != nil {
		if err := validation.Password(*newPassword); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// DeleteAccount verifies the password and removes the user together with
// every chart and entry they own, in one transaction.
func (s *UserService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var chartIDs []uuid.UUID
		if err := tx.Model(&models.Chart{}).Where("user_id = ?", userID).Pluck("id", &chartIDs).Error; err != nil {
			return err
		}
		if len(chartIDs) > 0 {
			if err := tx.Where("chart_id IN ?", chartIDs).Delete(&models.Entry{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Chart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
