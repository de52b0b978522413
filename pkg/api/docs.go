package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decode one persisted record and return its snapshot",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["decode"],
                "summary": "Decode a record",
                "parameters": [
                    {"description": "Record bytes", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}},
                    {"type": "integer", "description": "Version given to an unversioned root", "name": "version", "in": "query"},
                    {"type": "integer", "description": "Maximum object nesting", "name": "max_depth", "in": "query"},
                    {"type": "boolean", "description": "Reject bytes after the root object", "name": "strict", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DecodeResponse"}},
                    "400": {"description": "Malformed record", "schema": {"$ref": "#/definitions/api.DecodeFailure"}},
                    "422": {"description": "Unknown class identifier", "schema": {"$ref": "#/definitions/api.DecodeFailure"}},
                    "501": {"description": "Unsupported class", "schema": {"$ref": "#/definitions/api.DecodeFailure"}}
                }
            }
        },
        "/classes": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "List every supported and catalogued class identifier",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "List classes",
                "parameters": [
                    {"type": "boolean", "description": "Only supported (true) or only catalogued (false) classes", "name": "supported", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/classes/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Look up a class identifier in canonical or wire form",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Describe a class",
                "parameters": [
                    {"type": "string", "description": "Class identifier", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/codec.ClassInfo"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/library": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "List every record in the library, oldest first",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "List records",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Store raw record bytes in the library",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Store a record",
                "parameters": [
                    {"type": "string", "description": "Display name", "name": "name", "in": "query"},
                    {"description": "Record bytes", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/library/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decode every stored record; failures are reported per record",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Decode the library",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/library.Report"}},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/library/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decode the record stored under id and return its snapshot",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Decode a stored record",
                "parameters": [
                    {"type": "string", "description": "Record id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DecodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.DecodeFailure"}},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unknown class identifier", "schema": {"$ref": "#/definitions/api.DecodeFailure"}},
                    "501": {"description": "Unsupported class", "schema": {"$ref": "#/definitions/api.DecodeFailure"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Remove a record from the library",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "description": "Record id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "api.DecodeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "class": {"type": "string"},
                "snapshot": {"type": "object", "additionalProperties": true}
            }
        },
        "api.DecodeFailure": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "enum": ["ok", "unsupported", "unknown", "malformed", "error"]},
                "offset": {"type": "integer"},
                "field": {"type": "string"},
                "class_id": {"type": "string"}
            }
        },
        "codec.ClassInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "wire": {"type": "string"},
                "name": {"type": "string"},
                "supported": {"type": "boolean"},
                "versions": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "library.Result": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "outcome": {"type": "string"},
                "class": {"type": "string"},
                "size": {"type": "integer"},
                "error": {"type": "string"},
                "snapshot": {"type": "object", "additionalProperties": true}
            }
        },
        "library.Report": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "results": {"type": "array", "items": {"$ref": "#/definitions/library.Result"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "stylegraph REST API",
	Description:      "Decodes persisted cartographic style records into inspectable snapshots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
