package scanning

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// extractionSchemaJSON describes the object the prompt asks for. Scalar
// types are loose since the decoder coerces them.
const extractionSchemaJSON = `{
  "type": "object",
  "properties": {
    "invoices": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "serialNumber": {"type": ["string", "number", "null"]},
          "date": {"type": ["string", "null"]},
          "customerName": {"type": ["string", "null"]},
          "productName": {"type": ["string", "null"]},
          "quantity": {"type": ["number", "string", "null"]},
          "tax": {"type": ["number", "string", "null"]},
          "totalAmount": {"type": ["number", "string", "null"]}
        }
      }
    },
    "products": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "null"]},
          "quantity": {"type": ["number", "string", "null"]},
          "unitPrice": {"type": ["number", "string", "null"]},
          "tax": {"type": ["number", "string", "null"]},
          "priceWithTax": {"type": ["number", "string", "null"]}
        }
      }
    },
    "customers": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "null"]},
          "phone": {"type": ["string", "number", "null"]},
          "totalPurchaseAmount": {"type": ["number", "string", "null"]}
        }
      }
    }
  }
}`

var extractionSchema = jsonschema.MustCompileString("extraction.json", extractionSchemaJSON)

// validateExtraction reports whether data has the shape the prompt requests
func validateExtraction(data map[string]any) error {
	if err := extractionSchema.Validate(data); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
