package relations

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// Raw is a relationship description decoded from an untyped document such
// as JSON or TOML. Values use the generic shapes produced by those decoders:
// strings, []any and map[string]any.
//
// Go maps do not keep key order, so Order carries the document order of the
// keys of each mapping-valued field. Fields without an Order entry fall back
// to sorted keys.
type Raw struct {
	Fields map[string]any
	Order  map[string][]string
}

var knownFields = []string{
	FieldParents,
	FieldAbstractMethods,
	FieldRegularMethods,
	FieldAssociations,
	FieldAggregations,
	FieldAbstractClasses,
	FieldClasses,
}

type arrow struct {
	token      string
	undirected bool
}

// arrows lists the string pair notations.
var arrows = []arrow{
	{"<->", true},
	{"--", true},
	{"->", false},
}

// arrowRun matches a run of arrow characters that forms an arrow. A lone
// "-" or the angle brackets of "List<T>" do not match.
var arrowRun = regexp.MustCompile(`[<>-]*(?:->|<-|--)[<>-]*`)

// Decode checks the structural shape of every field in raw and converts it
// to Options. It fails on the first mismatch with an INVALID_INPUT error
// naming the field; no partial Options are returned.
func Decode(raw Raw) (Options, error) {
	for _, k := range slices.Sorted(maps.Keys(raw.Fields)) {
		if !slices.Contains(knownFields, k) {
			return Options{}, errors.Validation(k, "unknown relationship input")
		}
	}

	var opts Options
	var err error
	if opts.Parents, err = decodePairs(FieldParents, raw.Fields[FieldParents], false); err != nil {
		return Options{}, err
	}
	if opts.AbstractMethods, err = decodeMethods(FieldAbstractMethods, raw.Fields[FieldAbstractMethods], raw.Order[FieldAbstractMethods]); err != nil {
		return Options{}, err
	}
	if opts.RegularMethods, err = decodeMethods(FieldRegularMethods, raw.Fields[FieldRegularMethods], raw.Order[FieldRegularMethods]); err != nil {
		return Options{}, err
	}
	if opts.Associations, err = decodePairs(FieldAssociations, raw.Fields[FieldAssociations], true); err != nil {
		return Options{}, err
	}
	if opts.Aggregations, err = decodePairs(FieldAggregations, raw.Fields[FieldAggregations], true); err != nil {
		return Options{}, err
	}
	if opts.AbstractClasses, err = decodeStrings(FieldAbstractClasses, raw.Fields[FieldAbstractClasses]); err != nil {
		return Options{}, err
	}
	if opts.Classes, err = decodeStrings(FieldClasses, raw.Fields[FieldClasses]); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func decodePairs(field string, v any, allowUndirected bool) ([]Pair, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := asList(v)
	if !ok {
		return nil, errors.Validation(field, "expected a list of pairs, got %s", shapeOf(v))
	}
	pairs := make([]Pair, 0, len(items))
	for i, item := range items {
		p, err := decodePair(field, i, item)
		if err != nil {
			return nil, err
		}
		if p.Undirected && !allowUndirected {
			return nil, errors.Validation(field, "entry %d (%s) must be an ordered pair", i, p)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func decodePair(field string, i int, v any) (Pair, error) {
	switch x := v.(type) {
	case string:
		return decodePairString(field, i, x)
	case map[string]any:
		return decodePairObject(field, i, x)
	}

	items, ok := asList(v)
	if !ok {
		return Pair{}, errors.Validation(field, "entry %d must be a pair, got %s", i, shapeOf(v))
	}
	if len(items) != 2 {
		return Pair{}, errors.Validation(field, "entry %d has %d elements, want 2", i, len(items))
	}
	from, ok1 := items[0].(string)
	to, ok2 := items[1].(string)
	if !ok1 || !ok2 {
		return Pair{}, errors.Validation(field, "entry %d must be a pair of class names", i)
	}
	return Pair{From: from, To: to}, nil
}

// decodePairString splits "A -> B", "A <-> B" or "A -- B". The string must
// hold exactly one arrow, and that arrow must be one of the supported tokens.
func decodePairString(field string, i int, s string) (Pair, error) {
	found := arrowRun.FindAllStringIndex(s, -1)
	if len(found) == 0 {
		return Pair{}, errors.Validation(field, "entry %d (%q) is not a pair: use \"A -> B\" or \"A <-> B\"", i, s)
	}
	if len(found) > 1 {
		return Pair{}, errors.Validation(field, "entry %d (%q) has %d arrows, want 1", i, s, len(found))
	}

	start, end := found[0][0], found[0][1]
	token := s[start:end]
	idx := slices.IndexFunc(arrows, func(a arrow) bool { return a.token == token })
	if idx < 0 {
		return Pair{}, errors.Validation(field, "entry %d (%q): unsupported arrow %q", i, s, token)
	}
	from, to := strings.TrimSpace(s[:start]), strings.TrimSpace(s[end:])
	if from == "" || to == "" {
		return Pair{}, errors.Validation(field, "entry %d (%q) is missing a class name", i, s)
	}
	return Pair{From: from, To: to, Undirected: arrows[idx].undirected}, nil
}

func decodePairObject(field string, i int, m map[string]any) (Pair, error) {
	var p Pair
	for _, k := range slices.Sorted(maps.Keys(m)) {
		switch k {
		case "from", "to":
			s, ok := m[k].(string)
			if !ok {
				return Pair{}, errors.Validation(field, "entry %d: %q must be a class name, got %s", i, k, shapeOf(m[k]))
			}
			if k == "from" {
				p.From = s
			} else {
				p.To = s
			}
		case "undirected":
			b, ok := m[k].(bool)
			if !ok {
				return Pair{}, errors.Validation(field, "entry %d: \"undirected\" must be a boolean", i)
			}
			p.Undirected = b
		default:
			return Pair{}, errors.Validation(field, "entry %d: unknown key %q", i, k)
		}
	}
	if _, ok := m["from"]; !ok {
		return Pair{}, errors.Validation(field, "entry %d: missing \"from\"", i)
	}
	if _, ok := m["to"]; !ok {
		return Pair{}, errors.Validation(field, "entry %d: missing \"to\"", i)
	}
	return p, nil
}

func decodeMethods(field string, v any, order []string) (MethodsMap, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Validation(field, "expected a mapping from class to method list, got %s", shapeOf(v))
	}

	keys := orderedKeys(m, order)
	out := make(MethodsMap, 0, len(keys))
	for _, class := range keys {
		if _, ok := asList(m[class]); !ok {
			return nil, errors.Validation(field, "class %q: expected a list of method names, got %s", class, shapeOf(m[class]))
		}
		methods, err := decodeStrings(field+"."+class, m[class])
		if err != nil {
			return nil, err
		}
		out = append(out, MethodSet{Class: class, Methods: methods})
	}
	return out, nil
}

func decodeStrings(field string, v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	if ss, ok := v.([]string); ok {
		return slices.Clone(ss), nil
	}
	items, ok := asList(v)
	if !ok {
		return nil, errors.Validation(field, "expected a list of names, got %s", shapeOf(v))
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Validation(field, "entry %d must be a name, got %s", i, shapeOf(item))
		}
		out[i] = s
	}
	return out, nil
}

// orderedKeys returns the keys of m in document order. Keys missing from
// order follow in sorted order, and order entries absent from m are ignored.
func orderedKeys(m map[string]any, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func asList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func shapeOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case map[string]any:
		return "an object"
	case []any:
		if len(x) == 1 {
			return "a list of 1 element"
		}
		return fmt.Sprintf("a list of %d elements", len(x))
	case float64, int64, int:
		return "a number"
	}
	return "an unsupported value"
}
