// Package docs registers the Swagger document served at /swagger/index.html.
// Regenerate with: swag init -g cmd/main.go -o docs
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
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"enum": ["active", "inactive"], "type": "string", "description": "Status filter", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "users, token", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register user",
                "parameters": [
                    {"description": "User payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "message, token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by id",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "user, token", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Soft delete user",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "message, user", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/email/{email}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by email",
                "parameters": [{"type": "string", "description": "User email", "name": "email", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "user, token", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/features": {
            "get": {
                "produces": ["application/json"],
                "tags": ["features"],
                "summary": "List features",
                "parameters": [
                    {"enum": ["active", "inactive"], "type": "string", "description": "Status filter", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PackageFeature"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["features"],
                "summary": "Create feature",
                "parameters": [
                    {"description": "Feature payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateFeatureRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.PackageFeature"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/features/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["features"],
                "summary": "Get feature",
                "parameters": [{"type": "integer", "description": "Feature ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PackageFeature"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["features"],
                "summary": "Update feature",
                "parameters": [
                    {"type": "integer", "description": "Feature ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateFeatureRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PackageFeature"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["features"],
                "summary": "Soft delete feature",
                "parameters": [{"type": "integer", "description": "Feature ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "message, feature", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List audit events",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ws/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Stream audit events",
                "parameters": [
                    {"type": "string", "description": "Poll interval, e.g. 2s (max 10s)", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Poll interval in milliseconds (max 10000)", "name": "interval_ms", "in": "query"},
                    {"type": "string", "description": "Replay events from this time", "name": "since", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string", "example": "a@x.com"},
                "password": {"type": "string", "example": "p1"},
                "username": {"type": "string", "example": "a"},
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "a@x.com"},
                "password": {"type": "string", "example": "p1"}
            }
        },
        "handlers.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive"]}
            }
        },
        "handlers.CreateFeatureRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Priority support"},
                "description": {"type": "string", "example": "24/7 phone line"}
            }
        },
        "handlers.UpdateFeatureRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.PackageFeature": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Package Features API",
	Description:      "Users, authentication and package features with soft delete.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
