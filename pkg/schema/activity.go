package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ActivitySchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "activity",
	"fields" : [
		{"name": "id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "color", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "query", "type": "string"},
		{"name": "selected", "type": "boolean"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ActivityV1 struct {
	ID         string    `avro:"id"`
	SessionID  string    `avro:"session_id"`
	Kind       string    `avro:"kind"`
	ProductID  int64     `avro:"product_id"`
	Color      string    `avro:"color"`
	Quantity   int       `avro:"quantity"`
	Query      string    `avro:"query"`
	Selected   bool      `avro:"selected"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// ActivityV1Avro panics if the schema text is invalid.
func ActivityV1Avro() avro.Schema {
	return avro.MustParse(ActivitySchemaTextV1)
}
