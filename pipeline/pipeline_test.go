package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	dto "github.com/prometheus/client_model/go"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/connector/store"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

var pkg = checkpoint.MustParseAddress("0xa11ce")

func digest(n byte) string {
	var d checkpoint.Digest
	for i := range d {
		d[i] = n
	}
	return d.String()
}

func callInto(d string, target checkpoint.Address) checkpoint.ExecutedTransaction {
	return checkpoint.ExecutedTransaction{
		Transaction: checkpoint.Transaction{
			Digest: d,
			Data: checkpoint.TransactionData{
				Sender:  "0x5",
				GasData: checkpoint.GasData{Owner: "0x5", Price: 1000, Budget: 2_000_000},
				Kind: checkpoint.TransactionKind{Programmable: &checkpoint.ProgrammableTransaction{
					Commands: []checkpoint.Command{{
						Kind:     checkpoint.CommandMoveCall,
						MoveCall: &checkpoint.MoveCall{Package: target.String(), Module: "vault", Function: "deposit"},
					}},
				}},
			},
		},
		Effects: json.RawMessage(`{"status":"success"}`),
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestBuildRequiresPackage(t *testing.T) {
	_, err := NewIndexer().Build()
	if !errors.Is(err, ErrPackageNotSet) {
		t.Errorf("Build() error = %v, want ErrPackageNotSet", err)
	}
}

func TestBuildDefaults(t *testing.T) {
	indexer := NewIndexer()
	indexer.SetFilterPackage(pkg)
	p, err := indexer.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.Name() != "indexer_pipeline" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Package() != pkg {
		t.Errorf("Package() = %s", p.Package())
	}
	if got := p.Fields(); !reflect.DeepEqual(got, []IndexField{FieldTransaction, FieldEffects}) {
		t.Errorf("Fields() = %v, want transaction and effects", got)
	}
}

func TestFieldsAreFrozen(t *testing.T) {
	fields := []IndexField{FieldEvents, FieldInputObjects}
	indexer := NewIndexer()
	indexer.SetFilterPackage(pkg)
	indexer.SetFilterFields(fields)
	p, err := indexer.Build()
	if err != nil {
		t.Fatal(err)
	}

	fields[0] = FieldOutputObjects
	indexer.SetFilterFields(nil)
	got := p.Fields()
	got[1] = FieldTransaction

	if want := []IndexField{FieldEvents, FieldInputObjects}; !reflect.DeepEqual(p.Fields(), want) {
		t.Errorf("Fields() = %v, want %v", p.Fields(), want)
	}
}

func TestParseIndexField(t *testing.T) {
	tests := []struct {
		input   string
		want    IndexField
		wantErr bool
	}{
		{input: "transaction", want: FieldTransaction},
		{input: "Effects", want: FieldEffects},
		{input: " events ", want: FieldEvents},
		{input: "input_objects", want: FieldInputObjects},
		{input: "output_objects", want: FieldOutputObjects},
		{input: "signatures", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIndexField(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseIndexField(%q) succeeded", tt.input)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseIndexField(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
			}
			if got.String() != tt.want.String() {
				t.Errorf("String() = %q", got.String())
			}
		})
	}

	if _, err := ParseIndexFields([]string{"transaction", "bogus"}); err == nil {
		t.Error("ParseIndexFields should reject unknown names")
	}
	if s := IndexField(42).String(); s != "IndexField(42)" {
		t.Errorf("unknown field String() = %q", s)
	}
}

func TestProcessAndCommit(t *testing.T) {
	indexer := NewIndexer()
	indexer.SetFilterPackage(pkg)
	p, err := indexer.Build()
	if err != nil {
		t.Fatal(err)
	}
	db := newTestDB(t)
	ctx := context.Background()

	cp := &checkpoint.Checkpoint{
		SequenceNumber: 7,
		Transactions: []checkpoint.ExecutedTransaction{
			callInto(digest(1), pkg),
			callInto(digest(2), checkpoint.MustParseAddress("0xb0b")),
		},
	}
	sets, err := p.Process(cp)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(sets) != 1 || sets[0].TxDigest() != digest(1) {
		t.Fatalf("Process() = %d record-sets", len(sets))
	}

	inserted, err := p.Commit(ctx, db, sets)
	if err != nil || inserted != 1 {
		t.Fatalf("Commit() = %d, %v; want 1, nil", inserted, err)
	}
	inserted, err = p.Commit(ctx, db, sets)
	if err != nil || inserted != 0 {
		t.Errorf("repeated Commit() = %d, %v; want 0, nil", inserted, err)
	}
	inserted, err = p.Commit(ctx, db, nil)
	if err != nil || inserted != 0 {
		t.Errorf("empty Commit() = %d, %v; want 0, nil", inserted, err)
	}

	var stored model.Transaction
	if err := db.First(&stored, "tx_digest = ?", digest(1)).Error; err != nil {
		t.Fatal(err)
	}
	if stored.CheckpointSequenceNumber != 7 || stored.GasPrice != 1000 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestProcessMalformed(t *testing.T) {
	indexer := NewIndexer()
	indexer.SetFilterPackage(pkg)
	p, err := indexer.Build()
	if err != nil {
		t.Fatal(err)
	}
	cp := &checkpoint.Checkpoint{
		SequenceNumber: 8,
		Transactions:   []checkpoint.ExecutedTransaction{callInto("not a digest", pkg)},
	}
	if sets, err := p.Process(cp); err == nil {
		t.Errorf("Process() = %d record-sets, want error", len(sets))
	}
}

func gaugeValue(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := lastCheckpoint.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetGauge().GetValue()
}

func TestLastCheckpointGaugeNeverMovesBack(t *testing.T) {
	indexer := NewIndexer()
	indexer.SetFilterPackage(pkg)
	p, err := indexer.Build()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for seq := uint64(1000); seq >= 900; seq-- {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			if _, err := p.Process(&checkpoint.Checkpoint{SequenceNumber: seq}); err != nil {
				t.Error(err)
			}
		}(seq)
	}
	wg.Wait()
	if got := gaugeValue(t); got != 1000 {
		t.Errorf("last checkpoint gauge = %v, want 1000", got)
	}

	if _, err := p.Process(&checkpoint.Checkpoint{SequenceNumber: 5}); err != nil {
		t.Fatal(err)
	}
	if got := gaugeValue(t); got != 1000 {
		t.Errorf("gauge moved back to %v after an older checkpoint", got)
	}
}
