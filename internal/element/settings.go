package element

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/demersaj/elements/internal/types"
)

// Settings is the configuration surface an element consumes from the host's
// settings store. It is a thin wrapper over viper so elements get type
// coercion and layered defaults without owning file discovery.
type Settings struct {
	v *viper.Viper
}

// NewSettings creates an empty settings store.
func NewSettings() *Settings {
	return &Settings{v: viper.New()}
}

// LoadSettings reads a YAML settings file into a new store.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.SETTINGS_LOAD_FAILED,
			fmt.Sprintf("failed to read settings file %s", path), err)
	}

	return &Settings{v: v}, nil
}

// Set assigns a value, overriding any default.
func (s *Settings) Set(key string, value any) {
	s.v.Set(key, value)
}

// SetDefault assigns a fallback value used when the key is unset.
func (s *Settings) SetDefault(key string, value any) {
	s.v.SetDefault(key, value)
}

// IsSet reports whether the key has an explicit or default value.
func (s *Settings) IsSet(key string) bool {
	return s.v.IsSet(key)
}

func (s *Settings) GetString(key string) string {
	return s.v.GetString(key)
}

func (s *Settings) GetInt(key string) int {
	return s.v.GetInt(key)
}

func (s *Settings) GetFloat64(key string) float64 {
	return s.v.GetFloat64(key)
}

func (s *Settings) GetBool(key string) bool {
	return s.v.GetBool(key)
}

func (s *Settings) GetStringSlice(key string) []string {
	return s.v.GetStringSlice(key)
}
