package checkpoint

import "encoding/json"

// Checkpoint is an ordered batch of executed transactions finalized together.
type Checkpoint struct {
	SequenceNumber uint64                `json:"sequence_number"`
	TimestampMs    uint64                `json:"timestamp_ms"`
	Transactions   []ExecutedTransaction `json:"transactions"`
}

// ExecutedTransaction bundles a transaction with everything its execution produced.
type ExecutedTransaction struct {
	Transaction   Transaction        `json:"transaction"`
	Effects       json.RawMessage    `json:"effects"`
	Events        *TransactionEvents `json:"events"`
	InputObjects  []Object           `json:"input_objects"`
	OutputObjects []Object           `json:"output_objects"`
}

type Transaction struct {
	Digest     string          `json:"digest"`
	Data       TransactionData `json:"data"`
	Signatures []string        `json:"tx_signatures"`
}

type TransactionData struct {
	Sender     string          `json:"sender"`
	GasData    GasData         `json:"gas_data"`
	Kind       TransactionKind `json:"kind"`
	Expiration json.RawMessage `json:"expiration,omitempty"`
}

type GasData struct {
	Payment []ObjectRef `json:"payment"`
	Owner   string      `json:"owner"`
	Price   uint64      `json:"price"`
	Budget  uint64      `json:"budget"`
}

type ObjectRef struct {
	ObjectID string `json:"object_id"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
}

// MoveCalls returns the move calls of a programmable transaction in command
// order. Other transaction kinds invoke no packages.
func (d *TransactionData) MoveCalls() []MoveCall {
	pt := d.Kind.Programmable
	if pt == nil {
		return nil
	}
	var calls []MoveCall
	for _, cmd := range pt.Commands {
		if cmd.MoveCall != nil {
			calls = append(calls, *cmd.MoveCall)
		}
	}
	return calls
}

type TransactionEvents struct {
	Data []Event `json:"data"`
}

type Event struct {
	PackageID         string          `json:"package_id"`
	TransactionModule string          `json:"transaction_module"`
	Sender            string          `json:"sender"`
	Type              string          `json:"type"`
	Contents          json.RawMessage `json:"contents"`
}

// Object is an object as seen before or after execution.
type Object struct {
	ObjectID            string          `json:"object_id"`
	Version             uint64          `json:"version"`
	Digest              string          `json:"digest"`
	Type                string          `json:"type,omitempty"`
	Owner               json.RawMessage `json:"owner"`
	PreviousTransaction string          `json:"previous_transaction"`
	StorageRebate       uint64          `json:"storage_rebate"`
	Contents            json.RawMessage `json:"contents,omitempty"`
}
