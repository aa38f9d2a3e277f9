package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
)

const maxLineSize = 16 * 1024 * 1024

// ScanCheckpoints decodes one checkpoint per line and hands each to fn. Blank
// lines are skipped. Checkpoints at or below after are skipped so a restarted
// run can resume from the last committed sequence number.
func ScanCheckpoints(r io.Reader, after *uint64, fn func(*checkpoint.Checkpoint) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var cp checkpoint.Checkpoint
		if err := json.Unmarshal([]byte(line), &cp); err != nil {
			return fmt.Errorf("invalid checkpoint on line %d: %w", lineNo, err)
		}
		if after != nil && cp.SequenceNumber <= *after {
			continue
		}
		if err := fn(&cp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func LoadCheckpoints(fname string) ([]*checkpoint.Checkpoint, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var checkpoints []*checkpoint.Checkpoint
	err = ScanCheckpoints(file, nil, func(cp *checkpoint.Checkpoint) error {
		checkpoints = append(checkpoints, cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checkpoints, nil
}
