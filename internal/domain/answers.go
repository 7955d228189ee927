package domain

import "fmt"

// Answers is the immutable intake mapping of question keys to primitive or
// list values. One Answers value is produced per assessment session;
// revisions build a new value via With rather than mutating in place.
//
// Accessors fail fast on missing required keys or mistyped values: that is
// an intake-form/engine version mismatch, not a runtime data-quality issue.
type Answers map[string]any

// With returns a copy of the answers with one key replaced.
func (a Answers) With(key string, value any) Answers {
	out := make(Answers, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// Has reports whether the key was answered.
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Str returns a required string answer.
func (a Answers) Str(key string) string {
	v, ok := a[key]
	if !ok {
		panic(fmt.Sprintf("answers: missing required key %q", key))
	}
	s, ok := v.(string)
	if !ok {
		panic(fmt.Sprintf("answers: key %q is %T, want string", key, v))
	}
	return s
}

// StrOr returns a string answer or the default when the key is absent.
func (a Answers) StrOr(key, def string) string {
	if !a.Has(key) {
		return def
	}
	return a.Str(key)
}

// Strings returns a list answer, nil when absent. Intake decoders hand lists
// through as []any, so both representations are accepted.
func (a Answers) Strings(key string) []string {
	v, ok := a[key]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				panic(fmt.Sprintf("answers: key %q contains %T, want string", key, item))
			}
			out = append(out, s)
		}
		return out
	default:
		panic(fmt.Sprintf("answers: key %q is %T, want list", key, v))
	}
}

// IntOr returns an integer answer or the default when the key is absent.
func (a Answers) IntOr(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch vv := v.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case float64:
		return int(vv)
	default:
		panic(fmt.Sprintf("answers: key %q is %T, want int", key, v))
	}
}

// BoolOr returns a boolean answer or the default when the key is absent.
func (a Answers) BoolOr(key string, def bool) bool {
	v, ok := a[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		panic(fmt.Sprintf("answers: key %q is %T, want bool", key, v))
	}
	return b
}
