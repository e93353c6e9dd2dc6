package service

import (
	"strings"

	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/database/model"
	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/util/crypto"
)

const minPasswordLength = 6

// UserService handles registration, credential checks and profile updates.
type UserService struct {
	storage StorageService
}

// Register creates a new account. The username defaults to the local part of
// the email when not supplied. Duplicate emails are detected from the unique
// constraint rather than a read-then-write check.
func (s *UserService) Register(email, password, username string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, newValidationError("email and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, newValidationError("password must be at least 6 characters")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
		if username == "" {
			username = "user"
		}
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hash,
		Username: username,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsUniqueConstraint(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	logger.Infof("registered user %d (%s)", user.Id, user.Email)
	return user, nil
}

// CheckUser verifies credentials, returning nil on any failure. Callers must
// not reveal whether the email or the password was wrong.
func (s *UserService) CheckUser(email, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPassword(user.Password, password) {
		return nil
	}
	return user
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id_users = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar points the user at a freshly stored avatar and removes the
// superseded file. A missing old file is not an error.
func (s *UserService) UpdateAvatar(id int, avatarPath string) (*model.User, error) {
	user, err := s.GetUserById(id)
	if err != nil {
		return nil, err
	}

	oldPath := user.AvatarPath
	user.AvatarPath = avatarPath

	db := database.GetDB()
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}

	if oldPath != "" {
		s.storage.Remove(oldPath)
	}
	return user, nil
}

// CountUsers returns the number of registered accounts.
func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := database.GetDB().Model(model.User{}).Count(&count).Error
	return count, err
}

// AuditLegacyCredentials logs every account still carrying a plaintext
// credential and returns how many were found. Used by the migrate command.
func (s *UserService) AuditLegacyCredentials() (int, error) {
	db := database.GetDB()

	users := make([]model.User, 0)
	if err := db.Model(model.User{}).Find(&users).Error; err != nil {
		return 0, err
	}

	legacy := 0
	for _, user := range users {
		if crypto.IsLegacy(user.Password) {
			logger.Warningf("user %d (%s) has a plaintext credential", user.Id, user.Email)
			legacy++
		}
	}
	return legacy, nil
}
