// Package docs holds the OpenAPI document served by the swagger UI.
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
        "/api/admin/distress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List distress signals",
                "parameters": [
                    {"type": "integer", "description": "page size (1..200)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/api/admin/shutdown": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Toggle shutdown",
                "parameters": [
                    {"description": "shutdown flag", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.shutdownRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "description": "Sending the shutdown phrase toggles the server; while shut down every other message gets 503.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Chat with Hingem",
                "parameters": [
                    {"description": "message", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.chatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.ReplyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/presenter.ReplyResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/presenter.ReplyResponse"}}
                }
            }
        },
        "/api/distress": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["distress"],
                "summary": "Send a distress signal",
                "parameters": [
                    {"description": "arbitrary payload", "name": "input", "in": "body", "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/api/news": {
            "get": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Latest news",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/news.Article"}}}}
                }
            }
        },
        "/api/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Match outcome prediction",
                "parameters": [
                    {"description": "teams", "name": "input", "in": "body", "schema": {"$ref": "#/definitions/predict.Match"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/predict.Prediction"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.chatRequest": {
            "type": "object",
            "properties": {"message": {}}
        },
        "handlers.shutdownRequest": {
            "type": "object",
            "properties": {"shutdown": {"type": "boolean"}}
        },
        "news.Article": {
            "type": "object",
            "properties": {"title": {"type": "string"}}
        },
        "predict.Match": {
            "type": "object",
            "properties": {"away": {"type": "string"}, "home": {"type": "string"}}
        },
        "predict.Prediction": {
            "type": "object",
            "properties": {
                "away_win_prob": {"type": "number"},
                "confidence": {"type": "number"},
                "draw_prob": {"type": "number"},
                "home_win_prob": {"type": "number"}
            }
        },
        "presenter.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "presenter.ReplyResponse": {
            "type": "object",
            "properties": {"reply": {"type": "string"}, "source": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin token. Both \"Bearer <JWT>\" and \"<JWT>\" are accepted.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Hingem API",
	Description:      "Chat backend for the Hingem assistant: provider fallback, shutdown gate, news and prediction stubs, distress signals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
