package mockide

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml"
)

// BuildConfig — build-конфигурация проекта.
type BuildConfig struct {
	Board string `json:"board" toml:"board"`
}

// Project — проект workspace.
type Project struct {
	BuildConfigs map[string]BuildConfig `json:"buildConfigs" toml:"build_configs"`
}

// State — состояние фейкового расширения.
type State struct {
	Version              string             `toml:"version"`
	Initialized          bool               `toml:"initialized"`
	WestUpdated          bool               `toml:"west_updated"`
	RootPath             string             `toml:"root_path"`
	InitialSetupComplete bool               `toml:"initial_setup_complete"`
	ActiveProject        string             `toml:"active_project"`
	Projects             map[string]Project `toml:"projects"`
}

// DefaultState возвращает инициализированный workspace с одним проектом.
func DefaultState() State {
	return State{
		Version:              "1.0.0",
		Initialized:          true,
		WestUpdated:          true,
		RootPath:             "/home/user/zephyrproject",
		InitialSetupComplete: true,
		ActiveProject:        "blinky",
		Projects: map[string]Project{
			"blinky": {
				BuildConfigs: map[string]BuildConfig{
					"debug": {Board: "nrf52840dk_nrf52840"},
				},
			},
		},
	}
}

// LoadState читает состояние из TOML файла.
//
//	version = "1.2.0"
//	active_project = "blinky"
//
//	[projects.blinky.build_configs.debug]
//	board = "nrf52840dk_nrf52840"
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parse state file %s: %w", path, err)
	}
	if s.Projects == nil {
		s.Projects = make(map[string]Project)
	}
	return s, nil
}

// buildNames возвращает имена build-конфигураций в алфавитном порядке.
func (p Project) buildNames() []string {
	names := make([]string, 0, len(p.BuildConfigs))
	for name := range p.BuildConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
