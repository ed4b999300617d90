package neo4jdb

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Typed readers for driver records. The driver hands back interface{} values;
// these fail fast on an unexpected shape instead of coercing silently.

func recordInt64(rec *neo4j.Record, key string) (int64, error) {
	raw, ok := rec.Get(key)
	if !ok {
		return 0, fmt.Errorf("record is missing key %q", key)
	}
	val, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T for record key %q, want int64", raw, key)
	}
	return val, nil
}

func recordBool(rec *neo4j.Record, key string) (bool, error) {
	raw, ok := rec.Get(key)
	if !ok {
		return false, fmt.Errorf("record is missing key %q", key)
	}
	val, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type %T for record key %q, want bool", raw, key)
	}
	return val, nil
}
