package boards

import (
	"fmt"
	"io"

	"github.com/dlclark/regexp2"
)

// Options — параметры вывода, заданные пользователем.
type Options struct {
	// Format — строка формата; пустая означает DefaultFormat.
	Format string

	// NamePattern — регулярное выражение для имени платы; пустое — без фильтра.
	NamePattern string
}

// Lister фильтрует и форматирует платы. Создаётся один раз до обхода.
type Lister struct {
	tmpl *Template
	name *regexp2.Regexp
}

// NewLister компилирует формат и фильтр. Ошибки оборачивают
// ErrInvalidFormat или ErrInvalidPattern.
func NewLister(opts Options) (*Lister, error) {
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}

	tmpl, err := ParseTemplate(format)
	if err != nil {
		return nil, err
	}

	l := &Lister{tmpl: tmpl}
	if opts.NamePattern != "" {
		// Синтаксис regexp2 совместим с re из Python (lookaround, backreferences).
		re, err := regexp2.Compile(opts.NamePattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, opts.NamePattern, err)
		}
		l.name = re
	}
	return l, nil
}

// Match сообщает, проходит ли плата фильтр. Совпадение ищется в любом месте имени.
func (l *Lister) Match(b Board) (bool, error) {
	if l.name == nil {
		return true, nil
	}
	ok, err := l.name.MatchString(b.Name)
	if err != nil {
		return false, fmt.Errorf("match board %q: %w", b.Name, err)
	}
	return ok, nil
}

// Render форматирует плату по шаблону.
func (l *Lister) Render(b Board) string {
	return l.tmpl.Render(b)
}

// List выводит в w по строке на каждую плату, прошедшую фильтр, в исходном
// порядке. Возвращает число выведенных строк.
func (l *Lister) List(w io.Writer, boards []Board) (int, error) {
	printed := 0
	for _, b := range boards {
		ok, err := l.Match(b)
		if err != nil {
			return printed, err
		}
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, l.Render(b)); err != nil {
			return printed, fmt.Errorf("write board %q: %w", b.Name, err)
		}
		printed++
	}
	return printed, nil
}

// Run собирает всё вместе: компилирует опции, ищет платы в корнях,
// построенных из cfg, и выводит подходящие. Ошибки опций возвращаются до
// обращения к Discoverer.
func Run(w io.Writer, cfg Config, d Discoverer, boardRoots []string, opts Options) (int, error) {
	lister, err := NewLister(opts)
	if err != nil {
		return 0, err
	}

	boards, err := d.FindBoards(cfg.Roots(boardRoots))
	if err != nil {
		return 0, fmt.Errorf("find boards: %w", err)
	}

	return lister.List(w, boards)
}
