package domain

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"unicode"

	"gopkg.in/yaml.v3"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

//go:embed templates/rust.tmpl
var rustTmpl string

var rustTemplate = template.Must(template.New("rust.tmpl").
	Funcs(template.FuncMap{"quote": rustQuote, "ident": rustIdent}).
	Parse(rustTmpl))

var visibilityPattern = regexp.MustCompile(
	`^(pub(\((crate|self|super|in [A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*)\))?)?$`,
)

// EmitArgs contains what the emitter renders.
type EmitArgs struct {
	Format     m.Format
	Visibility string
	// Header is a comment line placed above rust output. Ignored by the
	// structured formats.
	Header string
	Groups []m.ModuleGroup
}

// Emitter turns scan results into declarations.
type Emitter interface {
	Emit(args EmitArgs) ([]byte, error)
}

type emitter struct{}

// NewEmitter returns the default Emitter.
func NewEmitter() Emitter {
	return &emitter{}
}

type emittedModule struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

type emittedGroup struct {
	Root       string          `json:"root" yaml:"root"`
	Visibility string          `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Modules    []emittedModule `json:"modules" yaml:"modules"`
}

func (e *emitter) Emit(args EmitArgs) ([]byte, error) {
	vis := strings.TrimSpace(args.Visibility)
	if !visibilityPattern.MatchString(vis) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVisibility, args.Visibility)
	}

	groups := make([]emittedGroup, 0, len(args.Groups))

	for _, group := range args.Groups {
		modules := make([]emittedModule, 0, len(group.Modules))

		for _, ref := range group.Modules {
			if !isIdentifier(ref.Name) {
				return nil, fmt.Errorf("%w: %q derived from %s", ErrInvalidIdentifier, ref.Name, ref.Path)
			}

			modules = append(modules, emittedModule{Name: ref.Name, Path: string(ref.Path)})
		}

		groups = append(groups, emittedGroup{Root: string(group.Root), Visibility: vis, Modules: modules})
	}

	switch args.Format {
	case m.FormatRust, "":
		return renderRust(groups, vis, args.Header)
	case m.FormatJSON:
		out, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

		return append(out, '\n'), nil
	case m.FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(groups); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, args.Format)
	}
}

func renderRust(groups []emittedGroup, vis, header string) ([]byte, error) {
	if vis != "" {
		vis += " "
	}

	data := struct {
		Header string
		Vis    string
		Groups []emittedGroup
	}{Header: header, Vis: vis, Groups: groups}

	var buf bytes.Buffer
	if err := rustTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render declarations: %w", err)
	}

	return buf.Bytes(), nil
}

// pathKeywords name scopes and cannot be declared, even as raw identifiers.
var pathKeywords = map[string]bool{
	"crate": true,
	"self":  true,
	"Self":  true,
	"super": true,
}

// rawKeywords are the remaining strict and reserved keywords. They are
// declared as raw identifiers.
var rawKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "do": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"final": true, "fn": true, "for": true, "gen": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "macro": true,
	"match": true, "mod": true, "move": true, "mut": true, "override": true,
	"priv": true, "pub": true, "ref": true, "return": true, "static": true,
	"struct": true, "trait": true, "true": true, "try": true, "type": true,
	"typeof": true, "unsafe": true, "unsized": true, "use": true, "virtual": true,
	"where": true, "while": true, "yield": true,
}

// isIdentifier reports whether name can be declared as a module. A lone
// underscore and the path keywords are rejected.
func isIdentifier(name string) bool {
	if name == "" || name == "_" || pathKeywords[name] {
		return false
	}

	for i, r := range name {
		switch {
		case i == 0 && (r == '_' || isXIDStart(r)):
		case i > 0 && isXIDContinue(r):
		default:
			return false
		}
	}

	return true
}

// isXIDStart and isXIDContinue use the Unicode ID_Start and ID_Continue
// derivations. The NFKC adjustments separating XID_* from ID_* are not
// applied; they concern a few compatibility characters only.
func isXIDStart(r rune) bool {
	return unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_ID_Start) && !isPatternRune(r)
}

func isXIDContinue(r rune) bool {
	if isXIDStart(r) {
		return true
	}

	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue) && !isPatternRune(r)
}

func isPatternRune(r rune) bool {
	return unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}

// rustIdent renders a validated name, escaping keywords as r#name.
func rustIdent(name string) string {
	if rawKeywords[name] {
		return "r#" + name
	}

	return name
}

// rustQuote renders s as a Rust string literal.
func rustQuote(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}

			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}
