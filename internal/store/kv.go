package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvTable is a string key/value table. Each operation runs in a single
// transaction.
type kvTable struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// get returns the stored values for keys. Missing keys are absent from the map.
func (t *kvTable) get(ctx context.Context, keys ...string) (map[string]string, error) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query, qargs := builder().
		Select("key", "value").
		From(entsql.Table(kvTableName)).
		Where(entsql.In("key", args...)).
		Query()

	rows := &entsql.Rows{}
	if err := t.drv.Query(ctx, query, qargs, rows); err != nil {
		return nil, fmt.Errorf("query kv: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan kv: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// apply upserts set and removes del in one transaction.
func (t *kvTable) apply(ctx context.Context, set map[string]string, del []string) (err error) {
	tx, err := t.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for k, v := range set {
		query, args := builder().
			Insert(kvTableName).
			Columns("key", "value", "updated_at").
			Values(k, v, now).
			OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
			Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}

	if len(del) > 0 {
		args := make([]any, len(del))
		for i, k := range del {
			args[i] = k
		}
		query, qargs := builder().
			Delete(kvTableName).
			Where(entsql.In("key", args...)).
			Query()
		if err = tx.Exec(ctx, query, qargs, nil); err != nil {
			return fmt.Errorf("delete keys: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// clear removes every key.
func (t *kvTable) clear(ctx context.Context) error {
	query, args := builder().Delete(kvTableName).Query()
	if err := t.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}
	return nil
}
