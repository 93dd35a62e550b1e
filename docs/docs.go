// Package docs registers the OpenAPI document of the backend API that the
// front-end proxies under /api, for the swagger UI.
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
        "/api/documents/indices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Document count per index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/api/documents/{index}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "One page of documents in an index",
                "parameters": [
                    {"type": "string", "name": "index", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query", "required": true, "minimum": 1},
                    {"type": "integer", "name": "size", "in": "query", "required": true, "minimum": 1}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/api/searchagent": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["searchagent"],
                "summary": "Run the search agent",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/queryWithSetting"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/api/searchagent/test": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["searchagent"],
                "summary": "Run the search agent with ad hoc prompts",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/queryWithPrompt"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        },
        "/api/searchagent/setting": {
            "get": {
                "produces": ["application/json"],
                "tags": ["searchagent"],
                "summary": "Saved prompt settings of an index",
                "parameters": [
                    {"type": "string", "name": "index", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["searchagent"],
                "summary": "Save prompt settings of an index",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/queryWithPrompt"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}
                }
            }
        }
    },
    "definitions": {
        "envelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "msg": {"type": "string"},
                "data": {}
            }
        },
        "queryWithSetting": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "setting": {"type": "string"}
            }
        },
        "queryWithPrompt": {
            "type": "object",
            "properties": {
                "index": {"type": "string"},
                "promptEsRAGMode": {"type": "string"},
                "promptChatMode": {"type": "string"},
                "query": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "crawler-agent API",
	Description:      "Backend endpoints reachable through the crawlerweb proxy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
