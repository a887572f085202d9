// Package docs registers the OpenAPI document served under /swagger/ when
// built with -tags=swagger. Regenerate with swag init -g cmd/creditd/docs.go -o docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Plain-text status line in api mode; the HTML form in form and both modes.",
                "produces": ["text/plain", "text/html"],
                "tags": ["api", "form"],
                "summary": "Service banner or application form",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Scores the submitted fields and renders the verdict with the approval percentage.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["form"],
                "summary": "Submit application form",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Scores one application with fields A1..A15. Numbers may be sent as JSON numbers or numeric strings; absent, null or empty fields are missing values.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["api"],
                "summary": "Predict credit approval",
                "parameters": [
                    {
                        "description": "Fields A1..A15",
                        "name": "application",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "description": "Loaded model, clamp table and forced fields.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "prediccion_clase": {"type": "integer", "example": 1},
                "probabilidad_aprobado": {"type": "number", "example": 0.8672}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer", "example": 400}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "estimator": {"type": "string", "example": "random_forest"},
                "path": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "classes": {"type": "array", "items": {"type": "integer"}},
                "trees": {"type": "integer"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "ready"},
                "mode": {"type": "string", "example": "api"},
                "model": {"$ref": "#/definitions/types.ModelInfo"},
                "clamp": {"type": "object", "additionalProperties": {"type": "number"}},
                "force": {"type": "object", "additionalProperties": {"type": "string"}},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "creditd API",
	Description:      "Credit approval predictions from a pre-trained classifier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
