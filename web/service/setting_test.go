package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingServiceDefaults(t *testing.T) {
	setup(t)
	service := SettingService{}

	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 3000, port)

	baseURL, err := service.GetBaseURL()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", baseURL)

	maxAge, err := service.GetSessionMaxAge()
	assert.NoError(t, err)
	assert.Equal(t, 60, maxAge)

	listen, err := service.GetListen()
	assert.NoError(t, err)
	assert.Empty(t, listen)
}

func TestSettingServicePersistence(t *testing.T) {
	setup(t)
	service := SettingService{}

	assert.NoError(t, service.SetPort(8080))
	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	assert.NoError(t, service.SetBaseURL("https://art.example.com"))
	baseURL, err := service.GetBaseURL()
	assert.NoError(t, err)
	assert.Equal(t, "https://art.example.com", baseURL)
}

func TestSettingServiceSecretIsStable(t *testing.T) {
	setup(t)
	service := SettingService{}

	first, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := service.GetSecret()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSettingServiceAllSettingsOmitsSecret(t *testing.T) {
	setup(t)
	service := SettingService{}

	_, err := service.GetSecret()
	assert.NoError(t, err)

	all, err := service.AllSettings()
	assert.NoError(t, err)
	assert.NotContains(t, all, "secret")
	assert.Contains(t, all, "webPort")
}

func TestSettingServiceReset(t *testing.T) {
	setup(t)
	service := SettingService{}

	assert.NoError(t, service.SetPort(9999))
	assert.NoError(t, service.ResetSettings())

	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 3000, port)
}
