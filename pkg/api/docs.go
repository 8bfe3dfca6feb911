package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/layout": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Record layout",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.LayoutEntry"}}}
                }
            }
        },
        "/fields/{name}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Read a field",
                "parameters": [{"type": "string", "description": "Field name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.FieldResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Write a field",
                "parameters": [
                    {"type": "string", "description": "Field name", "name": "name", "in": "path", "required": true},
                    {"description": "Value", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.FieldRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.FieldResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/export": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Export the record",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/import": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Import the record",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ImportResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/persist": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["record"],
                "summary": "Persist the record",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.PersistResponse"}},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    },
    "definitions": {
        "api.FieldRequest": {
            "type": "object",
            "properties": {"value": {"type": "string"}}
        },
        "api.FieldResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "value": {"type": "string"},
                "truncations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.ImportResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "truncations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.LayoutEntry": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "count": {"type": "integer"},
                "offset": {"type": "integer"},
                "length": {"type": "integer"}
            }
        },
        "api.PersistResponse": {
            "type": "object",
            "properties": {
                "session": {"type": "string"},
                "target": {"type": "string"},
                "bytes": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "binsave REST API",
	Description:      "Read, write and persist the fields of a fixed-schema binary record.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
