// Package docs holds the OpenAPI description served at /swagger.
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
        "/api/v1/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "List items",
                "parameters": [
                    {"type": "string", "description": "Sort order, e.g. -expiration", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page size (0 = all)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Page offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Create a new item",
                "parameters": [
                    {"description": "Item data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createReq"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Delete every item",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/items/closest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Items closest to expiry",
                "parameters": [
                    {"type": "integer", "description": "Maximum items", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/items/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Recently added items",
                "parameters": [
                    {"type": "integer", "description": "Maximum items", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/items/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Get item detail",
                "parameters": [
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "put": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Update an item",
                "parameters": [
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.createReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Delete an item",
                "parameters": [
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/items/{id}/thumbnail": {
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Replace an item's thumbnail",
                "parameters": [
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Thumbnail image (JPEG or PNG)", "name": "thumbnail", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/items/{id}/reminder": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Calendar"],
                "summary": "Schedule a calendar reminder",
                "parameters": [
                    {"type": "integer", "description": "Item ID", "name": "id", "in": "path", "required": true},
                    {"description": "Lead time", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/http.reminderReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "503": {"description": "Calendar not configured", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy"}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive"}}
            }
        }
    },
    "definitions": {
        "http.createReq": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Dishwasher"},
                "warranty_duration": {"type": "integer", "example": 12},
                "duration_unit": {"type": "string", "enum": ["days", "months"]},
                "warranty": {"type": "string", "example": "12 months"},
                "date_bought": {"type": "string", "example": "2023-01-15"}
            }
        },
        "http.reminderReq": {
            "type": "object",
            "properties": {
                "lead": {"type": "string", "example": "1 month"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Warranty Tracker API",
	Description:      "Track household purchases and their warranty expiration dates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
