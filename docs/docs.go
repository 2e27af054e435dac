// Package docs registers the OpenAPI document served under /swagger.
package docs

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
        "/api/validate-address": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Validate a postal location",
                "parameters": [
                    {"type": "string", "description": "ISO country code", "name": "countryCode", "in": "query", "required": true},
                    {"type": "string", "description": "Postal code", "name": "postalCode", "in": "query"},
                    {"type": "string", "description": "City name", "name": "city", "in": "query"},
                    {"type": "string", "description": "County name", "name": "countyName", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Missing required parameters", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Server configuration error", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/quote": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Get a rate quote",
                "parameters": [
                    {"description": "Quote request", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Missing required parameters", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/ship": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Create a shipment",
                "parameters": [
                    {"description": "Carrier shipment payload", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Invalid body", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/shipments/form": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Create a shipment from the booking form",
                "parameters": [
                    {"type": "string", "description": "Shipment form as JSON", "name": "form", "in": "formData", "required": true},
                    {"type": "file", "description": "Document sent with the shipment", "name": "attachment", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Invalid form", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/track": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Track a shipment",
                "parameters": [
                    {"type": "string", "description": "Carrier tracking number", "name": "trackingNumber", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Missing tracking number", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/reference-data": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Carrier"],
                "summary": "Fetch reference data",
                "parameters": [
                    {"type": "string", "description": "Dataset name", "name": "datasetName", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Carrier response, forwarded verbatim"},
                    "400": {"description": "Unsupported dataset", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Carrier failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Admin credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Missing username or password", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Admin store not enabled", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Search the shipment audit log",
                "parameters": [
                    {"type": "string", "name": "trackingNumber", "in": "query"},
                    {"type": "string", "name": "bookingRef", "in": "query"},
                    {"type": "string", "name": "shipperName", "in": "query"},
                    {"type": "string", "name": "receiverName", "in": "query"},
                    {"type": "string", "name": "reference", "in": "query"},
                    {"type": "string", "name": "accountNumber", "in": "query"},
                    {"type": "string", "name": "phone", "in": "query"},
                    {"type": "string", "name": "shipperCountry", "in": "query"},
                    {"type": "string", "name": "receiverCountry", "in": "query"},
                    {"type": "string", "name": "logType", "in": "query"},
                    {"type": "string", "name": "dateFrom", "in": "query"},
                    {"type": "string", "name": "dateTo", "in": "query"},
                    {"type": "string", "name": "timeFrom", "in": "query"},
                    {"type": "string", "name": "timeTo", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuditLogPage"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Audit store not enabled", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/request-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Search operational request logs",
                "parameters": [
                    {"type": "string", "name": "requestId", "in": "query"},
                    {"type": "string", "name": "level", "in": "query"},
                    {"type": "string", "name": "method", "in": "query"},
                    {"type": "string", "name": "path", "in": "query"},
                    {"type": "string", "name": "action", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuditLogPage"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Request-log store not enabled", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Service is alive"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready"},
                    "503": {"description": "Service is not ready"}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "carrier_application_error"},
                "message": {"type": "string"},
                "details": {"type": "object"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "admin"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "token_type": {"type": "string", "example": "Bearer"},
                "expires_in": {"type": "integer", "example": 28800},
                "user": {
                    "type": "object",
                    "properties": {
                        "username": {"type": "string"},
                        "full_name": {"type": "string"}
                    }
                }
            }
        },
        "AuditLogPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "count": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shipping Gateway API",
	Description:      "Carrier proxy for rate quotes, shipment booking, tracking and the shipment audit log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
