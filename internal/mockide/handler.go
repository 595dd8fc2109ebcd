package mockide

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Action — записанный вызов build или flash.
type Action struct {
	Kind        string // "build" или "flash"
	ProjectName string
	BuildName   string
	Pristine    bool
}

// Handler — обработчик фейкового API.
type Handler struct {
	apiKey string
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	actions []Action
}

// Config — конфигурация для создания Handler.
type Config struct {
	State  State
	APIKey string
	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		apiKey: cfg.APIKey,
		logger: logger,
		state:  cfg.State,
	}
}

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
		RequestID(),
		APIKey(h.apiKey),
	)

	mux.Handle("GET /api/status", chain(http.HandlerFunc(h.GetStatus)))
	mux.Handle("GET /api/projects", chain(http.HandlerFunc(h.ListProjects)))
	mux.Handle("GET /api/workspace/config", chain(http.HandlerFunc(h.GetWorkspaceConfig)))
	mux.Handle("POST /api/build", chain(http.HandlerFunc(h.Build)))
	mux.Handle("POST /api/flash", chain(http.HandlerFunc(h.Flash)))
}

// Actions возвращает копию записанных вызовов build/flash.
func (h *Handler) Actions() []Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Action(nil), h.actions...)
}

// GetStatus возвращает состояние расширения.
// GET /api/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	Success(w, map[string]any{
		"version":       h.state.Version,
		"initialized":   h.state.Initialized,
		"westUpdated":   h.state.WestUpdated,
		"activeProject": nullable(h.state.ActiveProject),
	})
}

// ListProjects возвращает проекты.
// GET /api/projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	projects := h.state.Projects
	if projects == nil {
		projects = map[string]Project{}
	}
	Success(w, projects)
}

// GetWorkspaceConfig возвращает конфигурацию workspace.
// GET /api/workspace/config
func (h *Handler) GetWorkspaceConfig(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	Success(w, map[string]any{
		"rootPath":             h.state.RootPath,
		"initialSetupComplete": h.state.InitialSetupComplete,
		"activeProject":        nullable(h.state.ActiveProject),
	})
}

type actionRequest struct {
	Pristine    bool   `json:"pristine"`
	ProjectName string `json:"projectName"`
	BuildName   string `json:"buildName"`
}

// Build запускает (фиктивную) сборку.
// POST /api/build
func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "build")
}

// Flash запускает (фиктивную) прошивку.
// POST /api/flash
func (h *Handler) Flash(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "flash")
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request, kind string) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	projectName := req.ProjectName
	if projectName == "" {
		projectName = h.state.ActiveProject
	}
	if projectName == "" {
		BadRequest(w, "No project specified and no active project set")
		return
	}

	project, ok := h.state.Projects[projectName]
	if !ok {
		NotFound(w, fmt.Sprintf("Project '%s' not found", projectName))
		return
	}

	buildName := req.BuildName
	if buildName == "" {
		names := project.buildNames()
		if len(names) == 0 {
			BadRequest(w, fmt.Sprintf("Project '%s' has no build configurations", projectName))
			return
		}
		buildName = names[0]
	}
	if _, ok := project.BuildConfigs[buildName]; !ok {
		NotFound(w, fmt.Sprintf("Build '%s' not found in project '%s'", buildName, projectName))
		return
	}

	h.actions = append(h.actions, Action{
		Kind:        kind,
		ProjectName: projectName,
		BuildName:   buildName,
		Pristine:    req.Pristine,
	})
	h.logger.Info("action accepted", "kind", kind, "project", projectName, "build", buildName, "pristine", req.Pristine)

	msg := fmt.Sprintf("%s started for %s/%s", titleKind(kind), projectName, buildName)
	if kind == "build" && req.Pristine {
		msg += " (pristine)"
	}
	Message(w, msg)
}

func titleKind(kind string) string {
	if kind == "flash" {
		return "Flash"
	}
	return "Build"
}

// nullable превращает пустую строку в JSON null, как это делает расширение.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
