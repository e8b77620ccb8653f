package store

import "database/sql"

// Updates merge a partial payload over the existing record. Pointer fields
// cover NOT NULL columns (nil means "leave alone"). Nullable columns need a
// third state, "write NULL", so they use the Opt types below.

// OptString patches a nullable text column. The zero value leaves the
// column alone; String(v) writes v; Null() writes NULL.
type OptString struct {
	Set   bool
	Valid bool
	Value string
}

// OptInt64 patches a nullable integer column, same states as OptString.
type OptInt64 struct {
	Set   bool
	Valid bool
	Value int64
}

func String(v string) OptString { return OptString{Set: true, Valid: true, Value: v} }
func Null() OptString           { return OptString{Set: true} }

func Int64(v int64) OptInt64 { return OptInt64{Set: true, Valid: true, Value: v} }
func NullInt64() OptInt64    { return OptInt64{Set: true} }

func (o OptString) apply(cur *string) *string {
	if !o.Set {
		return cur
	}
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func (o OptInt64) apply(cur *int64) *int64 {
	if !o.Set {
		return cur
	}
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// scan/bind helpers for nullable columns

func nullStr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
