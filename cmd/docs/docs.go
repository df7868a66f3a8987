// Package docs holds the swagger document served under /swagger.
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
        "/tx-classify/unclassified/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tx-classify"],
                "summary": "List bank transactions for review",
                "parameters": [
                    {"type": "integer", "name": "bank_account_id", "in": "query", "required": true},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"},
                    {"type": "string", "name": "min_amount", "in": "query"},
                    {"type": "string", "name": "max_amount", "in": "query"},
                    {"type": "string", "name": "unclassified_only", "in": "query"},
                    {"type": "string", "name": "include_children", "in": "query"},
                    {"type": "string", "name": "flatten_splits", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tx-classify/classify/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["tx-classify"],
                "summary": "Classify a transaction",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/tx-classify/split/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["tx-classify"],
                "summary": "Split a transaction",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/tx-classify/reclassify/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["tx-classify"],
                "summary": "Reclassify a classification",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/tx-classify/resplit/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["tx-classify"],
                "summary": "Re-split a classification",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/transaction-types/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List transaction types", "responses": {"200": {"description": "OK"}}}},
        "/cost-centres/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List cost centres", "responses": {"200": {"description": "OK"}}}},
        "/entities/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List entities", "responses": {"200": {"description": "OK"}}}},
        "/assets/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List assets", "responses": {"200": {"description": "OK"}}}},
        "/contracts/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List contracts", "responses": {"200": {"description": "OK"}}}},
        "/banks/": {"get": {"security": [{"BearerAuth": []}], "tags": ["lookups"], "summary": "List bank accounts", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Transaction Classification API",
	Description:      "Review and classify imported bank transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
