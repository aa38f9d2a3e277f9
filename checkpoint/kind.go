package checkpoint

import (
	"encoding/json"
	"fmt"
)

const ProgrammableTransactionKind = "ProgrammableTransaction"

// TransactionKind is either a programmable transaction or one of the system
// kinds (ChangeEpoch, Genesis, ConsensusCommitPrologue, ...), which are kept
// opaque.
type TransactionKind struct {
	Programmable *ProgrammableTransaction
	Name         string
	Payload      json.RawMessage
}

// Type returns the enum tag of the kind.
func (k TransactionKind) Type() string {
	if k.Programmable != nil {
		return ProgrammableTransactionKind
	}
	return k.Name
}

func (k TransactionKind) MarshalJSON() ([]byte, error) {
	if k.Programmable != nil {
		return json.Marshal(map[string]*ProgrammableTransaction{ProgrammableTransactionKind: k.Programmable})
	}
	payload := k.Payload
	if len(payload) == 0 {
		return json.Marshal(k.Name)
	}
	return json.Marshal(map[string]json.RawMessage{k.Name: payload})
}

func (k *TransactionKind) UnmarshalJSON(data []byte) error {
	tag, value, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("transaction kind: %w", err)
	}
	*k = TransactionKind{}
	if tag != ProgrammableTransactionKind {
		k.Name = tag
		k.Payload = value
		return nil
	}
	var pt ProgrammableTransaction
	if err := json.Unmarshal(value, &pt); err != nil {
		return fmt.Errorf("programmable transaction: %w", err)
	}
	k.Programmable = &pt
	return nil
}

// ProgrammableTransaction is a sequence of commands over a shared input list.
type ProgrammableTransaction struct {
	Inputs   []json.RawMessage `json:"inputs"`
	Commands []Command         `json:"commands"`
}

type CommandKind string

const (
	CommandMoveCall        CommandKind = "MoveCall"
	CommandTransferObjects CommandKind = "TransferObjects"
	CommandSplitCoins      CommandKind = "SplitCoins"
	CommandMergeCoins      CommandKind = "MergeCoins"
	CommandPublish         CommandKind = "Publish"
	CommandMakeMoveVec     CommandKind = "MakeMoveVec"
	CommandUpgrade         CommandKind = "Upgrade"
)

func (c CommandKind) valid() bool {
	switch c {
	case CommandMoveCall, CommandTransferObjects, CommandSplitCoins, CommandMergeCoins,
		CommandPublish, CommandMakeMoveVec, CommandUpgrade:
		return true
	}
	return false
}

// Command is one step of a programmable transaction. Only move calls are
// decoded; the operands of every other command stay raw.
type Command struct {
	Kind     CommandKind
	MoveCall *MoveCall
	Operands json.RawMessage
}

type MoveCall struct {
	Package       string            `json:"package"`
	Module        string            `json:"module"`
	Function      string            `json:"function"`
	TypeArguments []string          `json:"type_arguments,omitempty"`
	Arguments     []json.RawMessage `json:"arguments,omitempty"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	if c.Kind == CommandMoveCall {
		return json.Marshal(map[CommandKind]*MoveCall{CommandMoveCall: c.MoveCall})
	}
	operands := c.Operands
	if len(operands) == 0 {
		operands = json.RawMessage("null")
	}
	return json.Marshal(map[CommandKind]json.RawMessage{c.Kind: operands})
}

func (c *Command) UnmarshalJSON(data []byte) error {
	tag, value, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("command: %w", err)
	}
	kind := CommandKind(tag)
	if !kind.valid() {
		return fmt.Errorf("command: unknown kind %q", tag)
	}
	*c = Command{Kind: kind}
	if kind != CommandMoveCall {
		c.Operands = value
		return nil
	}
	var call MoveCall
	if err := json.Unmarshal(value, &call); err != nil {
		return fmt.Errorf("move call: %w", err)
	}
	c.MoveCall = &call
	return nil
}

// decodeTagged reads an externally tagged enum value: either {"Tag": value}
// or the bare string "Tag" for variants without a payload.
func decodeTagged(data []byte) (string, json.RawMessage, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == "" {
			return "", nil, fmt.Errorf("empty tag")
		}
		return name, nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("expected exactly one tag, got %d", len(obj))
	}
	for tag, value := range obj {
		return tag, value, nil
	}
	return "", nil, nil
}
