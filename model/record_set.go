package model

// RecordSet groups the rows produced from one matching transaction. Event is
// nil when the transaction emitted no events; every other part is always set.
type RecordSet struct {
	Transaction    Transaction
	Effect         TransactionEffect
	Event          *TransactionEvent
	InputObjects   InputObjects
	OutputObjects  OutputObjects
	CheckpointRoot *MyIndexData
}

func (r *RecordSet) TxDigest() string {
	return r.Transaction.TxDigest
}
