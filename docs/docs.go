// Package docs holds the OpenAPI document for the BFF. It is kept in the
// shape swag init produces from the handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with a social provider callback code",
                "parameters": [
                    {
                        "description": "provider callback",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign out and forget the cached session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/paper": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paper"],
                "summary": "The signed-in member's rolling paper, laid out in pages",
                "parameters": [
                    {"type": "boolean", "description": "use the mobile layout", "name": "mobile", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/paper/grid/coords": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paper"],
                "summary": "Map a page-local cell back to board coordinates",
                "parameters": [
                    {"type": "integer", "description": "0-based page", "name": "page", "in": "query", "required": true},
                    {"type": "integer", "description": "0-based column within the page", "name": "gridX", "in": "query", "required": true},
                    {"type": "integer", "description": "0-based row", "name": "gridY", "in": "query", "required": true},
                    {"type": "boolean", "description": "use the mobile layout", "name": "mobile", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/paper/{memberName}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["paper"],
                "summary": "Someone's rolling paper as a visitor sees it",
                "parameters": [
                    {"type": "string", "description": "paper owner", "name": "memberName", "in": "path", "required": true},
                    {"type": "boolean", "description": "use the mobile layout", "name": "mobile", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["paper"],
                "summary": "Leave a message on someone's paper",
                "parameters": [
                    {"type": "string", "description": "paper owner", "name": "memberName", "in": "path", "required": true},
                    {
                        "description": "message",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.WriteMessageRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Board listing",
                "parameters": [
                    {"type": "integer", "description": "0-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Write a post",
                "parameters": [
                    {
                        "description": "post",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.PostRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/posts/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Search the board",
                "parameters": [
                    {"type": "string", "description": "TITLE, TITLE_CONTENT or WRITER", "name": "type", "in": "query", "required": true},
                    {"type": "string", "description": "at least 2 characters", "name": "query", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/member/username": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["member"],
                "summary": "Rename the signed-in member",
                "parameters": [
                    {
                        "description": "new name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.UpdateNameRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/member/report": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["member"],
                "summary": "Report content, a bug or an improvement idea",
                "parameters": [
                    {
                        "description": "report",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ReportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/toasts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["toasts"],
                "summary": "Visible toasts of this browser session, oldest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        },
        "/errors": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["errors"],
                "summary": "Forward an unexpected client error",
                "parameters": [
                    {
                        "description": "error report",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ErrorReport"}
                    }
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/model.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.Result"}}
                }
            }
        }
    },
    "definitions": {
        "model.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string", "enum": ["KAKAO", "NAVER", "GOOGLE"]},
                "code": {"type": "string"},
                "state": {"type": "string"},
                "fcmToken": {"type": "string"}
            }
        },
        "model.WriteMessageRequest": {
            "type": "object",
            "properties": {
                "decoType": {"type": "string"},
                "anonymity": {"type": "string"},
                "content": {"type": "string"},
                "x": {"type": "integer"},
                "y": {"type": "integer"}
            }
        },
        "model.PostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "password": {"type": "integer"}
            }
        },
        "model.UpdateNameRequest": {
            "type": "object",
            "properties": {
                "memberName": {"type": "string"}
            }
        },
        "model.ReportRequest": {
            "type": "object",
            "properties": {
                "reportType": {"type": "string", "enum": ["POST", "COMMENT", "PAPER", "ERROR", "IMPROVEMENT"]},
                "targetId": {"type": "integer"},
                "content": {"type": "string"}
            }
        },
        "model.ErrorReport": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "stack": {"type": "string"},
                "url": {"type": "string"},
                "userAgent": {"type": "string"},
                "level": {"type": "string", "enum": ["error", "warning", "info"]},
                "occurredAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "BimilLog BFF API",
	Description:      "Backend-for-frontend of the BimilLog rolling-paper service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
