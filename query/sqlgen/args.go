package sqlgen

// Raw is SQL text that is emitted verbatim in both inline and
// parameterized statements. Use it for subqueries passed to EXISTS or ANY.
type Raw string

// Args accumulates bind values and hands out placeholders in the order the
// values are added.
type Args struct {
	placeholder func(n int) string
	values      []any
}

func newArgs(placeholder func(n int) string) *Args {
	return &Args{placeholder: placeholder, values: []any{}}
}

// Add binds v and returns its placeholder. Raw values are not bound; their
// text is returned as is.
func (a *Args) Add(v any) string {
	if r, ok := v.(Raw); ok {
		return string(r)
	}
	a.values = append(a.values, v)
	return a.placeholder(len(a.values))
}

// Values returns the bound values in placeholder order.
func (a *Args) Values() []any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}

// Len returns the number of bound values.
func (a *Args) Len() int {
	return len(a.values)
}
