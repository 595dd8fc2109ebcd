package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// Переменные окружения клиента.
const (
	EnvAPIURL = "ZIDE_API_URL"
	EnvAPIKey = "ZIDE_API_KEY"
)

// Settings — параметры подключения к API.
//
// Источники в порядке приоритета: флаги, переменные окружения,
// TOML файл, значения по умолчанию.
type Settings struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// DefaultConfigPath возвращает $XDG_CONFIG_HOME/zide/config.toml
// (или аналог для ОС). Пустая строка, если каталог не определён.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zide", "config.toml")
}

// LoadSettings читает TOML файл. Если файла нет и required=false,
// возвращаются пустые Settings.
func LoadSettings(path string, required bool) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// Override возвращает s, в которых непустые поля заменены значениями из o.
func (s Settings) Override(o Settings) Settings {
	if o.BaseURL != "" {
		s.BaseURL = o.BaseURL
	}
	if o.APIKey != "" {
		s.APIKey = o.APIKey
	}
	return s
}

// ResolveSettings объединяет все источники. configPath — путь из флага
// --config; пустой означает DefaultConfigPath, отсутствие которого не ошибка.
func ResolveSettings(flags Settings, configPath string, lookup func(string) (string, bool)) (Settings, error) {
	required := configPath != ""
	if !required {
		configPath = DefaultConfigPath()
	}

	file, err := LoadSettings(configPath, required)
	if err != nil {
		return Settings{}, err
	}

	var env Settings
	if v, ok := lookup(EnvAPIURL); ok {
		env.BaseURL = v
	}
	if v, ok := lookup(EnvAPIKey); ok {
		env.APIKey = v
	}

	s := Settings{BaseURL: DefaultBaseURL}.Override(file).Override(env).Override(flags)
	return s, nil
}
