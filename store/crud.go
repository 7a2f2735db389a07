package store

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
)

// Add inserts an entity. A primary key or uniqueness collision is reported
// as ErrConflict.
func (tx *Tx) Add(m any) error {
	table := model.TableOf(m)
	names, types, err := columns(m)
	if err != nil {
		return err
	}
	attrs, err := model.Attrs(m)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(names))
	for _, name := range names {
		v, err := encode(name, types[name], attrs[name])
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	query := "INSERT INTO " + table + " (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ") + ")"

	if _, err := tx.tx.Exec(query, args...); err != nil {
		if isConstraintViolation(err) {
			return errors.Wrapf(errors.ErrConflict, "insert into %s", table)
		}
		return errors.Wrapf(err, "insert into %s", table)
	}

	if tx.log != nil {
		tx.log.Debugw("Entity added", "table", table)
	}
	return nil
}

// Get loads the entity identified by the given key values into m. The key
// values align with the entity's key columns. Returns ErrNotFound when no
// row matches.
func (tx *Tx) Get(m any, keys ...any) error {
	table := model.TableOf(m)
	keyCols := model.KeyOf(m)
	if len(keys) != len(keyCols) {
		return errors.Newf("%s has %d key columns, got %d values", table, len(keyCols), len(keys))
	}
	names, types, err := columns(m)
	if err != nil {
		return err
	}

	query := "SELECT " + strings.Join(names, ", ") + " FROM " + table +
		" WHERE " + whereKey(keyCols)

	dests := make([]any, len(names))
	for i, name := range names {
		dests[i] = scanDest(types[name])
	}

	err = tx.tx.QueryRow(query, keys...).Scan(dests...)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrapf(errors.ErrNotFound, "%s %v", table, keys)
	}
	if err != nil {
		return errors.Wrapf(err, "select from %s", table)
	}

	return assign(m, names, types, dests)
}

// Save writes every non-key column of the entity back to its row. Returns
// ErrNotFound when the row no longer exists.
func (tx *Tx) Save(m any) error {
	table := model.TableOf(m)
	keyCols := model.KeyOf(m)
	names, types, err := columns(m)
	if err != nil {
		return err
	}
	attrs, err := model.Attrs(m)
	if err != nil {
		return err
	}

	keySet := map[string]struct{}{}
	for _, k := range keyCols {
		keySet[k] = struct{}{}
	}

	var sets []string
	var args []any
	for _, name := range names {
		if _, isKey := keySet[name]; isKey {
			continue
		}
		v, err := encode(name, types[name], attrs[name])
		if err != nil {
			return err
		}
		sets = append(sets, name+" = ?")
		args = append(args, v)
	}
	for _, k := range keyCols {
		v, err := encode(k, types[k], attrs[k])
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	query := "UPDATE " + table + " SET " + strings.Join(sets, ", ") +
		" WHERE " + whereKey(keyCols)

	res, err := tx.tx.Exec(query, args...)
	if err != nil {
		return errors.Wrapf(err, "update %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "update %s", table)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "update %s", table)
	}
	return nil
}

// Delete removes the entity's row. Deleting an already absent row is not an
// error.
func (tx *Tx) Delete(m any) error {
	table := model.TableOf(m)
	keyCols := model.KeyOf(m)
	_, types, err := columns(m)
	if err != nil {
		return err
	}
	attrs, err := model.Attrs(m)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(keyCols))
	for _, k := range keyCols {
		v, err := encode(k, types[k], attrs[k])
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	query := "DELETE FROM " + table + " WHERE " + whereKey(keyCols)
	if _, err := tx.tx.Exec(query, args...); err != nil {
		return errors.Wrapf(err, "delete from %s", table)
	}
	return nil
}

// Exists reports whether a row with the given key values exists.
func (tx *Tx) Exists(m any, keys ...any) (bool, error) {
	table := model.TableOf(m)
	keyCols := model.KeyOf(m)
	if len(keys) != len(keyCols) {
		return false, errors.Newf("%s has %d key columns, got %d values", table, len(keyCols), len(keys))
	}

	var found int
	query := "SELECT EXISTS(SELECT 1 FROM " + table + " WHERE " + whereKey(keyCols) + ")"
	if err := tx.tx.QueryRow(query, keys...).Scan(&found); err != nil {
		return false, errors.Wrapf(err, "exists %s", table)
	}
	return found == 1, nil
}

// DeleteWhere removes every row of the entity's table matching where.
func (tx *Tx) DeleteWhere(proto any, where string, args ...any) error {
	table := model.TableOf(proto)
	if _, err := tx.tx.Exec("DELETE FROM "+table+" WHERE "+where, args...); err != nil {
		return errors.Wrapf(err, "delete from %s", table)
	}
	return nil
}

// CountWhere returns the number of rows matching where.
func (tx *Tx) CountWhere(proto any, where string, args ...any) (int, error) {
	table := model.TableOf(proto)
	var n int
	if err := tx.tx.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE "+where, args...).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

// Count returns the number of rows in the entity's table.
func (tx *Tx) Count(m any) (int, error) {
	table := model.TableOf(m)
	var n int
	if err := tx.tx.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

// list loads every row matching where into fresh entities produced by next.
// proto supplies the entity kind; next must return a pointer to a new entity
// of that kind each call and retain it. order may be empty.
func (tx *Tx) list(proto any, next func() any, where, order string, args ...any) error {
	table := model.TableOf(proto)
	names, types, err := columns(proto)
	if err != nil {
		return err
	}

	query := "SELECT " + strings.Join(names, ", ") + " FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if order != "" {
		query += " ORDER BY " + order
	}

	rows, err := tx.tx.Query(query, args...)
	if err != nil {
		return errors.Wrapf(err, "select from %s", table)
	}
	defer rows.Close()

	for rows.Next() {
		m := next()

		dests := make([]any, len(names))
		for i, name := range names {
			dests[i] = scanDest(types[name])
		}
		if err := rows.Scan(dests...); err != nil {
			return errors.Wrapf(err, "scan %s", table)
		}
		if err := assign(m, names, types, dests); err != nil {
			return err
		}
	}
	return errors.Wrapf(rows.Err(), "iterate %s", table)
}

func assign(m any, names []string, types map[string]model.AttrType, dests []any) error {
	for i, name := range names {
		v, err := decode(name, types[name], dests[i])
		if err != nil {
			return err
		}
		if err := model.SetAttr(m, name, v); err != nil {
			return err
		}
	}
	return nil
}

func whereKey(keyCols []string) string {
	conds := make([]string, len(keyCols))
	for i, k := range keyCols {
		conds[i] = k + " = ?"
	}
	return strings.Join(conds, " AND ")
}

func isConstraintViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}
