package service

import (
	"strconv"

	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/database/model"
	"github.com/khoshimi/Pupupu/util/common"
	"github.com/khoshimi/Pupupu/util/random"
)

var defaultValueMap = map[string]string{
	"webListen":     "",
	"webDomain":     "",
	"webPort":       "3000",
	"publicBaseURL": "http://localhost:3000",
	"sessionMaxAge": "60",
	"secret":        random.Seq(32),
}

// SettingService reads and writes runtime settings stored in the settings
// table, falling back to compile-time defaults for absent keys.
type SettingService struct{}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

// GetBaseURL returns the public base address used to rewrite stored relative
// upload paths into absolute URLs.
func (s *SettingService) GetBaseURL() (string, error) {
	return s.getString("publicBaseURL")
}

func (s *SettingService) SetBaseURL(u string) error {
	return s.setString("publicBaseURL", u)
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) SetSessionMaxAge(minutes int) error {
	return s.setInt("sessionMaxAge", minutes)
}

// GetSecret returns the cookie-signing secret, generating and persisting one
// on first use so sessions survive restarts.
func (s *SettingService) GetSecret() (string, error) {
	_, err := s.getSetting("secret")
	if database.IsNotFound(err) {
		if err := s.saveSetting("secret", defaultValueMap["secret"]); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}
	return s.getString("secret")
}

// AllSettings returns every effective setting, defaults included, for the
// `setting show` CLI command. The signing secret is omitted.
func (s *SettingService) AllSettings() (map[string]string, error) {
	out := make(map[string]string, len(defaultValueMap))
	for key := range defaultValueMap {
		if key == "secret" {
			continue
		}
		value, err := s.getString(key)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}
