package extractor

import (
	"encoding/json"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/filter"
)

type callRef struct {
	PackageID string `json:"package_id"`
	Module    string `json:"module"`
	Function  string `json:"function"`
}

// commandSummary names the command; only move calls carry their target.
type commandSummary struct {
	Type     checkpoint.CommandKind `json:"type"`
	Package  string                 `json:"package,omitempty"`
	Module   string                 `json:"module,omitempty"`
	Function string                 `json:"function,omitempty"`
}

type programmableKind struct {
	Type           string            `json:"type"`
	MatchedCalls   []callRef         `json:"matched_calls"`
	TotalMoveCalls int               `json:"total_move_calls"`
	Inputs         []json.RawMessage `json:"inputs"`
	Commands       []commandSummary  `json:"commands"`
}

type genericKind struct {
	Type           string    `json:"type"`
	MatchedCalls   []callRef `json:"matched_calls"`
	TotalMoveCalls int       `json:"total_move_calls"`
}

// projectKind builds the tx_kind index value. It is a convenience view; the
// full transaction is stored separately.
func projectKind(kind checkpoint.TransactionKind, matched []filter.Call, totalMoveCalls int) interface{} {
	refs := make([]callRef, 0, len(matched))
	for _, c := range matched {
		refs = append(refs, callRef{PackageID: c.Package.String(), Module: c.Module, Function: c.Function})
	}

	pt := kind.Programmable
	if pt == nil {
		return genericKind{
			Type:           kind.Type(),
			MatchedCalls:   refs,
			TotalMoveCalls: totalMoveCalls,
		}
	}

	inputs := pt.Inputs
	if inputs == nil {
		inputs = []json.RawMessage{}
	}
	commands := make([]commandSummary, 0, len(pt.Commands))
	for _, cmd := range pt.Commands {
		commands = append(commands, summarizeCommand(cmd))
	}
	return programmableKind{
		Type:           checkpoint.ProgrammableTransactionKind,
		MatchedCalls:   refs,
		TotalMoveCalls: totalMoveCalls,
		Inputs:         inputs,
		Commands:       commands,
	}
}

func summarizeCommand(cmd checkpoint.Command) commandSummary {
	if cmd.Kind != checkpoint.CommandMoveCall || cmd.MoveCall == nil {
		return commandSummary{Type: cmd.Kind}
	}
	pkg := cmd.MoveCall.Package
	if addr, err := checkpoint.ParseAddress(pkg); err == nil {
		pkg = addr.String()
	}
	return commandSummary{
		Type:     checkpoint.CommandMoveCall,
		Package:  pkg,
		Module:   cmd.MoveCall.Module,
		Function: cmd.MoveCall.Function,
	}
}
