package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserServiceRegisterAndCheck(t *testing.T) {
	setup(t)
	service := UserService{}

	user, err := service.Register("user@example.com", "secret1", "")
	assert.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.Equal(t, "user@example.com", user.Email)
	// username defaults to the email local part
	assert.Equal(t, "user", user.Username)
	// credential is stored salted, never plaintext
	assert.NotContains(t, user.Password, "secret1")

	checked := service.CheckUser("user@example.com", "secret1")
	assert.NotNil(t, checked)
	assert.Equal(t, user.Id, checked.Id)

	assert.Nil(t, service.CheckUser("user@example.com", "secret2"))
	assert.Nil(t, service.CheckUser("nobody@example.com", "secret1"))
}

func TestUserServiceRegisterValidation(t *testing.T) {
	setup(t)
	service := UserService{}

	_, err := service.Register("", "secret1", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Register("user@example.com", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Register("user@example.com", "short", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	setup(t)
	service := UserService{}

	_, err := service.Register("user@example.com", "secret1", "someone")
	assert.NoError(t, err)

	_, err = service.Register("user@example.com", "other-password", "else")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserServiceRegisterExplicitUsername(t *testing.T) {
	setup(t)
	service := UserService{}

	user, err := service.Register("user@example.com", "secret1", "  painter  ")
	assert.NoError(t, err)
	assert.Equal(t, "painter", user.Username)
}

func TestUserServiceGetUser(t *testing.T) {
	setup(t)
	service := UserService{}

	created, err := service.Register("user@example.com", "secret1", "")
	assert.NoError(t, err)

	byEmail, err := service.GetUserByEmail("user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.Id, byEmail.Id)

	byId, err := service.GetUserById(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, created.Email, byId.Email)

	_, err = service.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetUserById(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceUpdateAvatar(t *testing.T) {
	setup(t)
	userService := UserService{}
	storage := StorageService{}

	user, err := userService.Register("user@example.com", "secret1", "")
	assert.NoError(t, err)

	first, err := storage.Save(makeFileHeader(t, "a.png", "image/png", 64), UploadAvatar)
	assert.NoError(t, err)

	updated, err := userService.UpdateAvatar(user.Id, first)
	assert.NoError(t, err)
	assert.Equal(t, first, updated.AvatarPath)

	// replacing removes the superseded file
	second, err := storage.Save(makeFileHeader(t, "b.png", "image/png", 64), UploadAvatar)
	assert.NoError(t, err)
	_, err = userService.UpdateAvatar(user.Id, second)
	assert.NoError(t, err)

	assert.NoFileExists(t, uploadedFilePath(first))
	assert.FileExists(t, uploadedFilePath(second))

	_, err = userService.UpdateAvatar(9999, second)
	assert.ErrorIs(t, err, ErrNotFound)
}
