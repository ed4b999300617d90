package neo4jdb

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestRecordInt64(t *testing.T) {
	rec := &neo4j.Record{Keys: []string{"like"}, Values: []any{int64(7)}}

	val, err := recordInt64(rec, "like")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), val)

	_, err = recordInt64(rec, "missing")
	assert.ErrorContains(t, err, "missing key")

	rec = &neo4j.Record{Keys: []string{"like"}, Values: []any{"7"}}
	_, err = recordInt64(rec, "like")
	assert.ErrorContains(t, err, "unexpected type")
}

func TestRecordBool(t *testing.T) {
	rec := &neo4j.Record{Keys: []string{"liked"}, Values: []any{true}}

	val, err := recordBool(rec, "liked")
	assert.NoError(t, err)
	assert.True(t, val)

	rec = &neo4j.Record{Keys: []string{"liked"}, Values: []any{int64(1)}}
	_, err = recordBool(rec, "liked")
	assert.ErrorContains(t, err, "unexpected type")
}
