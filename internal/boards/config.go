package boards

// EnvBase — переменная окружения с корнем дерева Zephyr.
const EnvBase = "ZEPHYR_BASE"

// Config — конфигурация поиска плат. Читается один раз при старте процесса.
type Config struct {
	// Base — корневой каталог Zephyr.
	Base string
}

// ConfigFromEnv читает ZEPHYR_BASE через lookup (обычно os.LookupEnv).
// Пустое значение считается отсутствующим.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	base, ok := lookup(EnvBase)
	if !ok || base == "" {
		return Config{}, ErrMissingBase
	}
	return Config{Base: base}, nil
}

// Roots — каталоги, в которых ищутся архитектуры, платы и SoC.
type Roots struct {
	ArchRoots  []string
	BoardRoots []string
	SocRoots   []string
}

// Roots строит корни поиска. Корни архитектур и SoC всегда закреплены за
// Base. Корни плат берутся из boardRoots; если их нет, используется Base.
func (c Config) Roots(boardRoots []string) Roots {
	roots := Roots{
		ArchRoots: []string{c.Base},
		SocRoots:  []string{c.Base},
	}
	if len(boardRoots) == 0 {
		roots.BoardRoots = []string{c.Base}
	} else {
		roots.BoardRoots = append([]string(nil), boardRoots...)
	}
	return roots
}
