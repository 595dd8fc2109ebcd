package boards

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defconfigSuffix = "_defconfig"

// Board — описание платы: имя, архитектура и каталог с её файлами.
type Board struct {
	Name string `json:"name"`
	Arch string `json:"arch"`
	Dir  string `json:"dir"`
}

// Discoverer находит платы в заданных корнях.
type Discoverer interface {
	FindBoards(roots Roots) ([]Board, error)
}

// FSDiscoverer ищет платы в файловой системе по раскладке Zephyr до 3.6:
//
//	<arch root>/arch/<arch>/
//	<board root>/boards/<arch>/<board dir>/<board>_defconfig
//
// Каталог arch/common архитектурой не считается. Символические ссылки на
// каталоги разыменовываются; отсутствующие пути и файлы на месте каталогов
// пропускаются. Результат отсортирован по имени платы.
type FSDiscoverer struct {
	Logger *slog.Logger
}

// FindBoards реализует Discoverer.
func (d FSDiscoverer) FindBoards(roots Roots) ([]Board, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("searching boards",
		"arch_roots", roots.ArchRoots,
		"board_roots", roots.BoardRoots,
		"soc_roots", roots.SocRoots,
	)

	arches, err := findArches(roots.ArchRoots)
	if err != nil {
		return nil, err
	}

	seen := make(map[Board]struct{})
	var boards []Board

	for _, root := range roots.BoardRoots {
		for _, arch := range arches {
			found, err := findBoardsIn(root, arch)
			if err != nil {
				return nil, err
			}
			for _, b := range found {
				if _, ok := seen[b]; ok {
					continue
				}
				seen[b] = struct{}{}
				boards = append(boards, b)
			}
		}
	}

	sort.Slice(boards, func(i, j int) bool {
		if boards[i].Name != boards[j].Name {
			return boards[i].Name < boards[j].Name
		}
		if boards[i].Arch != boards[j].Arch {
			return boards[i].Arch < boards[j].Arch
		}
		return boards[i].Dir < boards[j].Dir
	})

	logger.Debug("boards found", "count", len(boards), "arches", len(arches))
	return boards, nil
}

// findArches возвращает отсортированные имена архитектур во всех корнях.
func findArches(archRoots []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, root := range archRoots {
		entries, err := readDirIfExists(filepath.Join(root, "arch"))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Name() == "common" || !isDir(filepath.Join(root, "arch", e.Name())) {
				continue
			}
			set[e.Name()] = struct{}{}
		}
	}

	arches := make([]string, 0, len(set))
	for arch := range set {
		arches = append(arches, arch)
	}
	sort.Strings(arches)
	return arches, nil
}

// findBoardsIn ищет платы архитектуры arch в одном корне.
func findBoardsIn(root, arch string) ([]Board, error) {
	archDir := filepath.Join(root, "boards", arch)
	entries, err := readDirIfExists(archDir)
	if err != nil {
		return nil, err
	}

	var boards []Board
	for _, e := range entries {
		boardDir := filepath.Join(archDir, e.Name())
		if !isDir(boardDir) {
			continue
		}
		files, err := os.ReadDir(boardDir)
		if err != nil {
			return nil, fmt.Errorf("read board dir %s: %w", boardDir, err)
		}
		for _, f := range files {
			name, ok := strings.CutSuffix(f.Name(), defconfigSuffix)
			if !ok || name == "" {
				continue
			}
			boards = append(boards, Board{Name: name, Arch: arch, Dir: boardDir})
		}
	}
	return boards, nil
}

// readDirIfExists читает каталог. Отсутствующий путь и путь, который не
// является каталогом, дают пустой список.
func readDirIfExists(dir string) ([]os.DirEntry, error) {
	if !isDir(dir) {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	return entries, nil
}

// isDir сообщает, является ли path каталогом. Символические ссылки
// разыменовываются; битая ссылка каталогом не считается.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
