package interpolate

// scope is the per-call state of one top-level Substitute.
// It is never shared between calls.
type scope struct {
	// chain holds the in-flight keys in push order; index tracks membership.
	chain   []string
	index   map[string]struct{}
	missing []string
	lookups int
}

func newScope() *scope {
	return &scope{index: make(map[string]struct{})}
}

// push marks key as in flight. It returns a CycleError if key already is.
func (sc *scope) push(key string) error {
	if _, ok := sc.index[key]; ok {
		chain := make([]string, len(sc.chain), len(sc.chain)+1)
		copy(chain, sc.chain)
		return &CycleError{Key: key, Chain: append(chain, key)}
	}
	sc.index[key] = struct{}{}
	sc.chain = append(sc.chain, key)
	return nil
}

// pop removes the most recently pushed key.
func (sc *scope) pop() {
	last := sc.chain[len(sc.chain)-1]
	sc.chain = sc.chain[:len(sc.chain)-1]
	delete(sc.index, last)
}
