package boards

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultFormat — формат вывода по умолчанию.
const DefaultFormat = "{name}"

// Template — разобранная строка формата.
//
// Синтаксис повторяет именованные поля str.format:
//
//	{name}            значение поля
//	{arch:>8}         выравнивание по правому краю, ширина 8
//	{name:*^20.10}    заполнитель '*', по центру, обрезка до 10 символов
//	{{ и }}           литеральные скобки
//
// Доступные поля: name, arch, dir.
type Template struct {
	src      string
	segments []segment
}

type segment struct {
	literal string
	field   string // пусто для литерала
	spec    fieldSpec
}

type fieldSpec struct {
	fill      rune
	align     byte // '<', '>' или '^'
	width     int
	precision int // -1 — без обрезки
}

// ParseTemplate разбирает строку формата. Ошибки возвращаются как *FormatError.
func ParseTemplate(format string) (*Template, error) {
	t := &Template{src: format}
	var lit strings.Builder

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(format[i+1:], "{}")
			if end < 0 {
				return nil, &FormatError{Format: format, Pos: i, Message: "unmatched '{'"}
			}
			if format[i+1+end] == '{' {
				msg := "unexpected '{' in field name"
				if strings.Contains(format[i+1:i+1+end], ":") {
					msg = "nested replacement fields are not supported"
				}
				return nil, &FormatError{Format: format, Pos: i + 1 + end, Message: msg}
			}
			seg, err := parseField(format, i, format[i+1:i+1+end])
			if err != nil {
				return nil, err
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{literal: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, seg)
			i += end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &FormatError{Format: format, Pos: i, Message: "single '}' encountered"}
		default:
			lit.WriteByte(c)
		}
	}

	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

// MustParseTemplate разбирает шаблон и паникует при ошибке.
// Используется только для тестов и констант.
func MustParseTemplate(format string) *Template {
	t, err := ParseTemplate(format)
	if err != nil {
		panic(err)
	}
	return t
}

func parseField(format string, pos int, body string) (segment, error) {
	fail := func(msg string) (segment, error) {
		return segment{}, &FormatError{Format: format, Pos: pos, Message: msg}
	}

	name, spec, _ := strings.Cut(body, ":")
	name, conv, hasConv := strings.Cut(name, "!")
	if hasConv && conv != "s" {
		return fail("unsupported conversion '!" + conv + "'")
	}

	switch {
	case name == "" || isDigits(name):
		return fail("positional fields are not supported")
	case strings.ContainsAny(name, ".["):
		return fail("attribute and index access is not supported in " + strconv.Quote(name))
	case !isField(name):
		return fail("unknown field " + strconv.Quote(name) + " (expected name, arch or dir)")
	}

	fs, ok := parseSpec(spec)
	if !ok {
		return fail("invalid format spec " + strconv.Quote(spec))
	}
	return segment{field: name, spec: fs}, nil
}

// parseSpec разбирает [[fill]align][0][width][.precision][s].
func parseSpec(spec string) (fieldSpec, bool) {
	fs := fieldSpec{fill: ' ', align: '<', precision: -1}
	if spec == "" {
		return fs, true
	}

	rest := spec
	first, size := utf8.DecodeRuneInString(rest)
	if second, size2 := utf8.DecodeRuneInString(rest[size:]); size < len(rest) && isAlign(second) {
		fs.fill, fs.align = first, byte(second)
		rest = rest[size+size2:]
	} else if isAlign(first) {
		fs.align = byte(first)
		rest = rest[size:]
	} else if strings.HasPrefix(rest, "0") {
		fs.fill = '0'
	}

	digits := leadingDigits(rest)
	if digits != "" {
		fs.width, _ = strconv.Atoi(digits)
		rest = rest[len(digits):]
	}

	if strings.HasPrefix(rest, ".") {
		digits = leadingDigits(rest[1:])
		if digits == "" {
			return fs, false
		}
		fs.precision, _ = strconv.Atoi(digits)
		rest = rest[1+len(digits):]
	}

	rest = strings.TrimPrefix(rest, "s")
	return fs, rest == ""
}

// Render подставляет поля платы в шаблон.
func (t *Template) Render(b Board) string {
	var sb strings.Builder
	for _, seg := range t.segments {
		if seg.field == "" {
			sb.WriteString(seg.literal)
			continue
		}
		sb.WriteString(seg.spec.apply(fieldValue(b, seg.field)))
	}
	return sb.String()
}

// String возвращает исходную строку формата.
func (t *Template) String() string {
	return t.src
}

func (fs fieldSpec) apply(value string) string {
	if fs.precision >= 0 && utf8.RuneCountInString(value) > fs.precision {
		value = string([]rune(value)[:fs.precision])
	}

	pad := fs.width - utf8.RuneCountInString(value)
	if pad <= 0 {
		return value
	}

	fill := string(fs.fill)
	switch fs.align {
	case '>':
		return strings.Repeat(fill, pad) + value
	case '^':
		left := pad / 2
		return strings.Repeat(fill, left) + value + strings.Repeat(fill, pad-left)
	default:
		return value + strings.Repeat(fill, pad)
	}
}

func fieldValue(b Board, field string) string {
	switch field {
	case "name":
		return b.Name
	case "arch":
		return b.Arch
	default:
		return b.Dir
	}
}

func isField(name string) bool {
	return name == "name" || name == "arch" || name == "dir"
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

func isDigits(s string) bool {
	return s != "" && leadingDigits(s) == s
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
