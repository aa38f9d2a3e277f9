package filter

import (
	"errors"
	"testing"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
)

var (
	pkgP = checkpoint.MustParseAddress("0xa11ce")
	pkgQ = checkpoint.MustParseAddress("0xb0b")
)

func TestMatch(t *testing.T) {
	m := New(pkgP)

	tests := []struct {
		name      string
		calls     []Call
		wantMatch bool
		wantCalls int
	}{
		{name: "no calls", calls: nil},
		{name: "other package only", calls: []Call{{Package: pkgQ, Module: "m", Function: "f"}}},
		{
			name:      "single call into target",
			calls:     []Call{{Package: pkgP, Module: "m1", Function: "f1"}},
			wantMatch: true,
			wantCalls: 1,
		},
		{
			name: "mixed packages",
			calls: []Call{
				{Package: pkgQ, Module: "dex", Function: "swap"},
				{Package: pkgP, Module: "m2", Function: "f2"},
				{Package: pkgP, Module: "m3", Function: "f3"},
			},
			wantMatch: true,
			wantCalls: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, ok := m.Match(tt.calls)
			if ok != tt.wantMatch {
				t.Errorf("Match() ok = %v, want %v", ok, tt.wantMatch)
			}
			if len(matched) != tt.wantCalls {
				t.Errorf("Match() returned %d calls, want %d", len(matched), tt.wantCalls)
			}
			for _, c := range matched {
				if c.Package != pkgP {
					t.Errorf("matched call into %s", c.Package)
				}
			}
		})
	}
}

func TestMatchKeepsOrder(t *testing.T) {
	calls := []Call{
		{Package: pkgP, Module: "b", Function: "second"},
		{Package: pkgQ, Module: "x", Function: "skip"},
		{Package: pkgP, Module: "a", Function: "first"},
	}
	matched, _ := New(pkgP).Match(calls)
	if len(matched) != 2 || matched[0].Function != "second" || matched[1].Function != "first" {
		t.Errorf("Match() = %+v, want original order", matched)
	}
}

func TestResolveCanonicalizes(t *testing.T) {
	calls, err := Resolve([]checkpoint.MoveCall{
		{Package: "0xA11CE", Module: "m", Function: "f"},
		{Package: "00000000000000000000000000000000000000000000000000000000000a11ce", Module: "m", Function: "g"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	matched, ok := New(pkgP).Match(calls)
	if !ok || len(matched) != 2 {
		t.Errorf("short, upper case and unprefixed ids should all match, got %+v", matched)
	}
	if New(pkgP).Target() != pkgP.String() {
		t.Errorf("Target() = %s", New(pkgP).Target())
	}
}

func TestResolveMalformed(t *testing.T) {
	_, err := Resolve([]checkpoint.MoveCall{
		{Package: "0xa11ce", Module: "m", Function: "f"},
		{Package: "not-an-address", Module: "m", Function: "f"},
	})
	if !errors.Is(err, checkpoint.ErrMalformedReference) {
		t.Errorf("Resolve() error = %v, want ErrMalformedReference", err)
	}
}
