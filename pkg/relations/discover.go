package relations

// Discover returns every class taking part in opts, each exactly once, in
// first-appearance order: parent endpoints, association endpoints,
// aggregation endpoints, abstract-methods keys, regular-methods keys and
// finally the explicit Classes list. Within a pair From precedes To.
//
// The order is stable for identical inputs, which keeps the PlantUML output
// byte-for-byte reproducible.
func Discover(opts Options) []string {
	var classes []string
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}

	for _, pairs := range [][]Pair{opts.Parents, opts.Associations, opts.Aggregations} {
		for _, p := range pairs {
			add(p.From)
			add(p.To)
		}
	}
	for _, m := range []MethodsMap{opts.AbstractMethods, opts.RegularMethods} {
		for _, s := range m {
			add(s.Class)
		}
	}
	for _, c := range opts.Classes {
		add(c)
	}
	return classes
}
