package store

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"

	logger2 "github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/logger"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

// tblCreateSqlMap holds hand written DDL per dialect. Dialects without an
// entry fall back to gorm AutoMigrate.
var tblCreateSqlMap = map[string]map[string][]string{
	"postgres": {
		"transactions": {
			`CREATE TABLE IF NOT EXISTS transactions (
    tx_digest                  VARCHAR(64) PRIMARY KEY,
    checkpoint_sequence_number BIGINT      NOT NULL,
    sender                     VARCHAR(66) NOT NULL,
    tx_kind                    JSONB       NOT NULL,
    gas_budget                 BIGINT      NOT NULL,
    gas_price                  BIGINT      NOT NULL,
    serialized_tx              JSONB       NOT NULL,
    created_at                 TIMESTAMPTZ DEFAULT NOW()
)`,
			`CREATE INDEX IF NOT EXISTS transactions_checkpoint_idx ON transactions (checkpoint_sequence_number)`,
		},
		"transaction_effects": {`CREATE TABLE IF NOT EXISTS transaction_effects (
    tx_digest    VARCHAR(64) PRIMARY KEY REFERENCES transactions (tx_digest),
    effects_json JSONB       NOT NULL,
    created_at   TIMESTAMPTZ DEFAULT NOW()
)`},
		"transaction_events": {`CREATE TABLE IF NOT EXISTS transaction_events (
    tx_digest   VARCHAR(64) PRIMARY KEY REFERENCES transactions (tx_digest),
    events_json JSONB       NOT NULL,
    created_at  TIMESTAMPTZ DEFAULT NOW()
)`},
		"input_objects": {`CREATE TABLE IF NOT EXISTS input_objects (
    tx_digest    VARCHAR(64) PRIMARY KEY REFERENCES transactions (tx_digest),
    objects_json JSONB       NOT NULL,
    created_at   TIMESTAMPTZ DEFAULT NOW()
)`},
		"output_objects": {`CREATE TABLE IF NOT EXISTS output_objects (
    tx_digest    VARCHAR(64) PRIMARY KEY REFERENCES transactions (tx_digest),
    objects_json JSONB       NOT NULL,
    created_at   TIMESTAMPTZ DEFAULT NOW()
)`},
		"checkpoint_transactions": {`CREATE TABLE IF NOT EXISTS checkpoint_transactions (
    tx_digest                  VARCHAR(64) PRIMARY KEY,
    transaction_digest         VARCHAR(64) NOT NULL,
    transaction_effects_digest VARCHAR(64),
    transaction_events_digest  VARCHAR(64),
    input_objects_digest       VARCHAR(64),
    output_objects_digest      VARCHAR(64),
    created_at                 TIMESTAMPTZ DEFAULT NOW()
)`},
		"my_index_data": {`CREATE TABLE IF NOT EXISTS my_index_data (
    id                         VARCHAR(128) PRIMARY KEY,
    checkpoint_sequence_number BIGINT       NOT NULL
)`},
	},
	"mysql": {
		"transactions": {"CREATE TABLE IF NOT EXISTS `transactions` (\n" +
			"    `tx_digest` varchar(64) NOT NULL,\n" +
			"    `checkpoint_sequence_number` bigint(20) NOT NULL,\n" +
			"    `sender` varchar(66) NOT NULL,\n" +
			"    `tx_kind` json NOT NULL,\n" +
			"    `gas_budget` bigint(20) NOT NULL,\n" +
			"    `gas_price` bigint(20) NOT NULL,\n" +
			"    `serialized_tx` json NOT NULL,\n" +
			"    `created_at` datetime(3) NULL DEFAULT CURRENT_TIMESTAMP(3),\n" +
			"    PRIMARY KEY (`tx_digest`),\n" +
			"    KEY `transactions_checkpoint_idx` (`checkpoint_sequence_number`)\n" +
			");"},
		"transaction_effects":     {mysqlChildTable("transaction_effects", "effects_json")},
		"transaction_events":      {mysqlChildTable("transaction_events", "events_json")},
		"input_objects":           {mysqlChildTable("input_objects", "objects_json")},
		"output_objects":          {mysqlChildTable("output_objects", "objects_json")},
		"checkpoint_transactions": {"CREATE TABLE IF NOT EXISTS `checkpoint_transactions` (\n" +
			"    `tx_digest` varchar(64) NOT NULL,\n" +
			"    `transaction_digest` varchar(64) NOT NULL,\n" +
			"    `transaction_effects_digest` varchar(64) DEFAULT NULL,\n" +
			"    `transaction_events_digest` varchar(64) DEFAULT NULL,\n" +
			"    `input_objects_digest` varchar(64) DEFAULT NULL,\n" +
			"    `output_objects_digest` varchar(64) DEFAULT NULL,\n" +
			"    `created_at` datetime(3) NULL DEFAULT CURRENT_TIMESTAMP(3),\n" +
			"    PRIMARY KEY (`tx_digest`)\n" +
			");"},
		"my_index_data": {"CREATE TABLE IF NOT EXISTS `my_index_data` (\n" +
			"    `id` varchar(128) NOT NULL,\n" +
			"    `checkpoint_sequence_number` bigint(20) NOT NULL,\n" +
			"    PRIMARY KEY (`id`)\n" +
			");"},
	},
}

func mysqlChildTable(table, column string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%[1]s` (\n"+
		"    `tx_digest` varchar(64) NOT NULL,\n"+
		"    `%[2]s` json NOT NULL,\n"+
		"    `created_at` datetime(3) NULL DEFAULT CURRENT_TIMESTAMP(3),\n"+
		"    PRIMARY KEY (`tx_digest`),\n"+
		"    CONSTRAINT `%[1]s_tx_fk` FOREIGN KEY (`tx_digest`) REFERENCES `transactions` (`tx_digest`)\n"+
		");", table, column)
}

func JudgeTableExistOrNot(db *gorm.DB, tableName string) (bool, error) {
	if err := db.Error; err != nil {
		return false, err
	}
	return db.Migrator().HasTable(tableName), nil
}

func CreateTableIfNotExist[T any](db *gorm.DB, table T, tableName string) error {
	exist, err := JudgeTableExistOrNot(db, tableName)
	if err != nil {
		return err
	}
	if exist {
		return nil
	}

	statements, ok := tblCreateSqlMap[db.Dialector.Name()][tableName]
	if !ok {
		tType := reflect.TypeOf(table)
		instance := reflect.New(tType).Interface()
		if err := db.AutoMigrate(instance); err != nil {
			return fmt.Errorf("create table %s failed: %w", tableName, err)
		}
		return nil
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create table %s failed: %w", tableName, err)
		}
	}
	return nil
}

// Migrate creates every table the pipeline writes, parents before children.
func Migrate(db *gorm.DB) error {
	steps := []func() error{
		func() error { return CreateTableIfNotExist(db, model.Transaction{}, model.Transaction{}.TableName()) },
		func() error {
			return CreateTableIfNotExist(db, model.TransactionEffect{}, model.TransactionEffect{}.TableName())
		},
		func() error {
			return CreateTableIfNotExist(db, model.TransactionEvent{}, model.TransactionEvent{}.TableName())
		},
		func() error { return CreateTableIfNotExist(db, model.InputObjects{}, model.InputObjects{}.TableName()) },
		func() error { return CreateTableIfNotExist(db, model.OutputObjects{}, model.OutputObjects{}.TableName()) },
		func() error {
			return CreateTableIfNotExist(db, model.CheckpointTransaction{}, model.CheckpointTransaction{}.TableName())
		},
		func() error { return CreateTableIfNotExist(db, model.MyIndexData{}, model.MyIndexData{}.TableName()) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	logger2.GetLogger().WithField("dialect", db.Dialector.Name()).Info("schema ready")
	return nil
}
