package allowlist

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNilSet is returned by FromSet when no set was supplied at all.
var ErrNilSet = errors.New("a nil set cannot be used as an allow-list")

// Filter is an immutable set of allowed metric names.  The zero value and a nil *Filter both
// allow every name.
type Filter struct {
	allowed map[string]struct{}
}

// New creates a Filter from zero or more names.  Duplicates are collapsed and the order of the
// names has no effect.  Supplying no names produces a Filter that allows everything.
func New(names ...string) *Filter {
	f := &Filter{
		allowed: make(map[string]struct{}, len(names)),
	}

	for _, n := range names {
		f.allowed[n] = struct{}{}
	}

	return f
}

// FromSet creates a Filter from an already parsed set of names.  The set is copied, so subsequent
// changes to it are not seen by the returned Filter.  A nil set is rejected with ErrNilSet, while
// an empty, non-nil set produces a Filter that allows everything.
func FromSet(set map[string]struct{}) (*Filter, error) {
	if set == nil {
		return nil, ErrNilSet
	}

	return &Filter{
		allowed: maps.Clone(set),
	}, nil
}

// Matches tests if the given metric name is allowed.  Names are compared exactly, with no
// case folding or trimming.
func (f *Filter) Matches(name string) bool {
	if f == nil || len(f.allowed) == 0 {
		return true
	}

	_, ok := f.allowed[name]
	return ok
}

// MatchesMetric is the (name, metric) form of Matches.  The metric is ignored.
func (f *Filter) MatchesMetric(name string, _ interface{}) bool {
	return f.Matches(name)
}

// Len returns the number of distinct allowed names.  Zero means every name is allowed.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}

	return len(f.allowed)
}

// Names returns a sorted copy of the allowed names.
func (f *Filter) Names() []string {
	if f == nil {
		return nil
	}

	names := maps.Keys(f.allowed)
	slices.Sort(names)
	return names
}

func (f *Filter) String() string {
	if f.Len() == 0 {
		return "allowlist(*)"
	}

	return fmt.Sprintf("allowlist%v", f.Names())
}
