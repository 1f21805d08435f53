// Package docs registers the API document with swag so echo-swagger can
// serve it under /swagger.
package docs

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: swag.Name,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// Register publishes doc as the swagger document of this process.
func Register(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	SwaggerInfo.SwaggerTemplate = string(raw)
	if doc.Info != nil {
		SwaggerInfo.Title = doc.Info.Title
		SwaggerInfo.Description = doc.Info.Description
		SwaggerInfo.Version = doc.Info.Version
	}
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	return nil
}
