package schema

import "github.com/hamba/avro/v2"

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "phone", "type": "string"},
		{"name": "email", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "items", "type": {
			"type": "map",
			"values": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "qty", "type": "long"},
					{"name": "price_per_unit", "type": "double"},
					{"name": "price", "type": "double"},
					{"name": "image_url", "type": "string"}
				]
			}
		}},
		{"name": "total_qty", "type": "long"},
		{"name": "total_price", "type": "double"}
	]
}`

type (
	OrderPlacedV1 struct {
		OrderID    string                 `avro:"order_id"`
		Phone      string                 `avro:"phone"`
		Email      string                 `avro:"email"`
		Shipping   string                 `avro:"shipping"`
		Items      map[string]OrderItemV1 `avro:"items"`
		TotalQty   int                    `avro:"total_qty"`
		TotalPrice float64                `avro:"total_price"`
	}

	OrderItemV1 struct {
		Qty          int     `avro:"qty"`
		PricePerUnit float64 `avro:"price_per_unit"`
		Price        float64 `avro:"price"`
		ImageURL     string  `avro:"image_url"`
	}
)

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
