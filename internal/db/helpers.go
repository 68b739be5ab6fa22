package db

import "database/sql"

// NullIfEmpty stores an optional string as NULL instead of "". Reads go
// through COALESCE, so "" stays the single absent value inside the process.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullIfZero stores an optional numeric id as NULL instead of 0.
func NullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

// NullFloat stores an optional coordinate; nil stays NULL.
func NullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// FloatPtr converts a scanned nullable float back to the model's pointer form.
func FloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// IntPtr converts a scanned nullable id back to the model's pointer form.
func IntPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
