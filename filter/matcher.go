// Package filter decides whether a transaction invokes the indexed package.
package filter

import (
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
)

// Call is a resolved move call: package, module and function.
type Call struct {
	Package  checkpoint.Address
	Module   string
	Function string
}

// Resolve parses the package ids of raw move calls. A malformed package id
// fails the whole resolution.
func Resolve(calls []checkpoint.MoveCall) ([]Call, error) {
	resolved := make([]Call, 0, len(calls))
	for _, c := range calls {
		pkg, err := checkpoint.ParseAddress(c.Package)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, Call{Package: pkg, Module: c.Module, Function: c.Function})
	}
	return resolved, nil
}

// Matcher matches calls against a single target package. The zero value
// matches the 0x0 address. Matcher is immutable and safe for concurrent use.
type Matcher struct {
	target string
}

func New(target checkpoint.Address) Matcher {
	return Matcher{target: target.String()}
}

func (m Matcher) Target() string {
	return m.target
}

// Match returns the calls into the target package, in their original order,
// and whether there was at least one. Module and function are not compared.
func (m Matcher) Match(calls []Call) ([]Call, bool) {
	var matched []Call
	for _, c := range calls {
		if c.Package.String() == m.target {
			matched = append(matched, c)
		}
	}
	return matched, len(matched) > 0
}
