package extractor

import (
	"encoding/hex"

	"github.com/wealdtech/go-merkletree"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

// checkpointRoot hashes the matched digests, in checkpoint order, into a
// blake2b Merkle root keyed row for my_index_data.
func checkpointRoot(seq uint64, sets []model.RecordSet) (*model.MyIndexData, error) {
	leaves := make([][]byte, 0, len(sets))
	for i := range sets {
		d, err := checkpoint.ParseDigest(sets[i].TxDigest())
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, d.Bytes())
	}
	tree, err := merkletree.New(leaves)
	if err != nil {
		return nil, err
	}
	return &model.MyIndexData{
		ID:                       hex.EncodeToString(tree.Root()),
		CheckpointSequenceNumber: int64(seq),
	}, nil
}
