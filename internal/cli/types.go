package cli

import (
	"encoding/json"
	"sort"
)

// --- Response types ---

// Status — состояние расширения (GET /api/status).
type Status struct {
	Version       string `json:"version"`
	Initialized   bool   `json:"initialized"`
	WestUpdated   bool   `json:"westUpdated"`
	ActiveProject string `json:"activeProject,omitempty"`
}

// Project — проект workspace. Содержимое build-конфигураций клиенту
// не интересно, сохраняется как есть.
type Project struct {
	BuildConfigs map[string]json.RawMessage `json:"buildConfigs"`
}

// BuildNames возвращает имена build-конфигураций в алфавитном порядке.
func (p Project) BuildNames() []string {
	names := make([]string, 0, len(p.BuildConfigs))
	for name := range p.BuildConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Projects — проекты по имени (GET /api/projects).
type Projects map[string]Project

// Names возвращает имена проектов в алфавитном порядке.
func (p Projects) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WorkspaceConfig — конфигурация workspace (GET /api/workspace/config).
type WorkspaceConfig struct {
	RootPath             string `json:"rootPath"`
	InitialSetupComplete bool   `json:"initialSetupComplete"`
	ActiveProject        string `json:"activeProject,omitempty"`
}

// ActionResult — результат запуска build/flash.
type ActionResult struct {
	Message string `json:"message,omitempty"`
}

// --- Request types ---

// BuildRequest — тело POST /api/build. Пустые имена не сериализуются,
// pristine передаётся всегда.
type BuildRequest struct {
	Pristine    bool   `json:"pristine"`
	ProjectName string `json:"projectName,omitempty"`
	BuildName   string `json:"buildName,omitempty"`
}

// FlashRequest — тело POST /api/flash.
type FlashRequest struct {
	ProjectName string `json:"projectName,omitempty"`
	BuildName   string `json:"buildName,omitempty"`
}

// --- API response wrapper ---

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
