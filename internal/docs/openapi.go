// Package docs builds the OpenAPI description of the payments API and
// registers it with swag so it can be served at /docs.
package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

type registeredDoc struct {
	mu   sync.RWMutex
	body string
}

func (d *registeredDoc) ReadDoc() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.body
}

var (
	current      = &registeredDoc{}
	registerOnce sync.Once
)

// Register validates the document and makes it the default swag document.
func Register(serverURL string) error {
	doc := Build(serverURL)
	if err := doc.Validate(context.Background()); err != nil {
		return fmt.Errorf("invalid openapi document: %w", err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	current.mu.Lock()
	current.body = string(body)
	current.mu.Unlock()

	// swag panics when a name is registered twice.
	registerOnce.Do(func() {
		swag.Register(swag.Name, current)
	})
	return nil
}

// Build describes the payment routes.
func Build(serverURL string) *openapi3.T {
	errorSchema := openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("error", openapi3.NewStringSchema())

	createBody := openapi3.NewObjectSchema().
		WithProperty("amount", openapi3.NewInt64Schema().WithMin(1)).
		WithProperty("currency", openapi3.NewStringSchema().WithEnum("usd"))

	createResult := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("client_secret", openapi3.NewStringSchema())

	confirmBody := openapi3.NewObjectSchema().
		WithProperty("paymentIntentId", openapi3.NewStringSchema()).
		WithProperty("paymentMethod", openapi3.NewStringSchema().WithEnum("pm_card_visa"))
	confirmBody.Required = []string{"paymentIntentId"}

	intent := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema())

	nullableString := openapi3.NewStringSchema().WithNullable()
	nullableInt := openapi3.NewInt64Schema().WithNullable()
	historyRow := openapi3.NewObjectSchema().
		WithProperty("pago_id", openapi3.NewInt64Schema()).
		WithProperty("monto", openapi3.NewInt64Schema()).
		WithProperty("fecha", openapi3.NewDateTimeSchema()).
		WithProperty("tipo_pago_id", nullableInt).
		WithProperty("usuario_id", nullableInt).
		WithProperty("evento_id", nullableInt).
		WithProperty("intent_id", openapi3.NewStringSchema()).
		WithProperty("tarjeta_id", nullableInt).
		WithProperty("numero_tarjeta", nullableString).
		WithProperty("fecha_expiracion", nullableString).
		WithProperty("cvv", nullableString)

	createOp := openapi3.NewOperation()
	createOp.Summary = "Creates a Stripe PaymentIntent and records the payment"
	createOp.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(createBody)}
	createOp.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("Confirmation prompt or completion message", createResult)),
		openapi3.WithStatus(400, jsonResponse("Malformed body", errorSchema)),
		openapi3.WithStatus(500, jsonResponse("Gateway or store failure", errorSchema)),
	)

	confirmOp := openapi3.NewOperation()
	confirmOp.Summary = "Confirms a Stripe PaymentIntent"
	confirmOp.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(confirmBody)}
	confirmOp.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("The PaymentIntent as returned by Stripe", intent)),
		openapi3.WithStatus(400, jsonResponse("Missing paymentIntentId", errorSchema)),
		openapi3.WithStatus(500, jsonResponse("Gateway failure", errorSchema)),
	)

	historyOp := openapi3.NewOperation()
	historyOp.Summary = "Lists every payment with its card data"
	historyOp.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("Payment history", openapi3.NewArraySchema().WithItems(historyRow))),
		openapi3.WithStatus(500, jsonResponse("Store failure", errorSchema)),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Pagos API",
			Version:     "1.0.0",
			Description: "API para gestionar pagos",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/pago", &openapi3.PathItem{Post: createOp}),
			openapi3.WithPath("/confirmarpago", &openapi3.PathItem{Post: confirmOp}),
			openapi3.WithPath("/historialpagos", &openapi3.PathItem{Get: historyOp}),
		),
	}
	if serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: serverURL}}
	}
	return doc
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema)}
}
