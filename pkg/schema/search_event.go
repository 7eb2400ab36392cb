package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "pricecompare",
	"name": "search_event",
	"fields" : [
		{"name": "id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "total_results", "type": "long"},
		{"name": "execution_time_ms", "type": "long"},
		{"name": "platforms_used", "type": {"type": "array", "items": "string"}},
		{"name": "timestamp", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type SearchEventV1 struct {
	ID              string    `avro:"id"`
	Query           string    `avro:"query"`
	TotalResults    int64     `avro:"total_results"`
	ExecutionTimeMS int64     `avro:"execution_time_ms"`
	PlatformsUsed   []string  `avro:"platforms_used"`
	Timestamp       time.Time `avro:"timestamp"`
}

func SearchEventV1Avro() avro.Schema {
	return avro.MustParse(SearchEventSchemaTextV1)
}
