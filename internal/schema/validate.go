package schema

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

// Issue levels.
const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// Issue is a single validation finding on a document.
type Issue struct {
	Path    string `json:"path" yaml:"path"`
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string { return fmt.Sprintf("%s %s: %s", i.Level, i.Path, i.Message) }

// Validate checks a raw document (as decoded from the content store) against
// the named type. System attributes (leading underscore) are ignored.
func (r *Registry) Validate(typeName string, doc map[string]any) []Issue {
	t, ok := r.Get(typeName)
	if !ok {
		return []Issue{{Path: typeName, Level: LevelError, Message: "unknown document type"}}
	}
	var issues []Issue
	validateFields(t.Fields, doc, "", &issues)
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func validateFields(fields []Field, doc map[string]any, prefix string, issues *[]Issue) {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
		v, present := doc[f.Name]
		validateValue(f, v, present && v != nil, join(prefix, f.Name), issues)
	}
	var unknown []string
	for k := range doc {
		if !strings.HasPrefix(k, "_") && !known[k] {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	for _, k := range unknown {
		*issues = append(*issues, Issue{Path: join(prefix, k), Level: LevelWarning, Message: "unknown field"})
	}
}

func add(issues *[]Issue, path, level, format string, args ...any) {
	*issues = append(*issues, Issue{Path: path, Level: level, Message: fmt.Sprintf(format, args...)})
}

func validateValue(f Field, v any, present bool, path string, issues *[]Issue) {
	rules := f.Validation
	if !present {
		if rules != nil && rules.Required {
			add(issues, path, LevelError, "required")
		}
		return
	}

	switch f.Type {
	case TypeString, TypeText, TypeURL:
		s, ok := v.(string)
		if !ok {
			add(issues, path, LevelError, "expected %s, got %T", f.Type, v)
			return
		}
		if rules != nil && rules.Required && strings.TrimSpace(s) == "" {
			add(issues, path, LevelError, "required")
		}
		if rules != nil && rules.MaxLength > 0 && utf8.RuneCountInString(s) > rules.MaxLength {
			add(issues, path, LevelWarning, "longer than %d characters", rules.MaxLength)
		}
		if len(f.Options) > 0 && s != "" && !slices.Contains(f.Options, s) {
			add(issues, path, LevelError, "%q is not one of %s", s, strings.Join(f.Options, ", "))
		}
		if f.Type == TypeURL && s != "" {
			u, err := url.Parse(s)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				add(issues, path, LevelError, "not an http(s) URL")
			}
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			add(issues, path, LevelError, "expected boolean, got %T", v)
		}
	case TypeImage:
		m, ok := v.(map[string]any)
		if !ok {
			add(issues, path, LevelError, "expected image, got %T", v)
			return
		}
		if _, ok := m["asset"]; !ok {
			add(issues, path, LevelWarning, "image without asset")
		}
		sub := make(map[string]any, len(m))
		for k, val := range m {
			if k != "asset" && k != "hotspot" && k != "crop" {
				sub[k] = val
			}
		}
		validateFields(f.Fields, sub, path, issues)
	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			add(issues, path, LevelError, "expected object, got %T", v)
			return
		}
		validateFields(f.Fields, m, path, issues)
	case TypeArray:
		items, ok := v.([]any)
		if !ok {
			add(issues, path, LevelError, "expected array, got %T", v)
			return
		}
		if rules != nil && rules.Max > 0 && len(items) > rules.Max {
			add(issues, path, LevelError, "at most %d items allowed, got %d", rules.Max, len(items))
		}
		if rules != nil && rules.Required && len(items) == 0 {
			add(issues, path, LevelError, "required")
		}
		validateItems(f, items, path, issues)
	}
}

func validateItems(f Field, items []any, path string, issues *[]Issue) {
	if f.Of == nil {
		return
	}
	seen := map[string]bool{}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if f.Of.Type != TypeObject {
			validateValue(*f.Of, item, item != nil, itemPath, issues)
			continue
		}
		m, ok := item.(map[string]any)
		if !ok {
			add(issues, itemPath, LevelError, "expected object, got %T", item)
			continue
		}
		key, _ := m["_key"].(string)
		switch {
		case key == "":
			add(issues, itemPath, LevelError, "missing _key")
		case seen[key]:
			add(issues, itemPath, LevelError, "duplicate _key %q", key)
		default:
			seen[key] = true
		}
		validateFields(f.Of.Fields, m, itemPath, issues)
	}
}
