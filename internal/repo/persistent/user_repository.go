package persistent

import (
	"time"

	"velvetroom/internal/entity"
	"velvetroom/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByLogin matches either username or email, active accounts only.
	GetByLogin(login string) (*entity.User, error)
	UpdateLastLogin(id int) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id int) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByLogin(login string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.Where("(username = ? OR email = ?) AND is_active = ?", login, login, true).
		First(&userModel).Error
	if err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateLastLogin(id int) error {
	now := time.Now()
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).
		Update("last_login", &now).Error
}
