package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Admin UI API",
        "description": "Server-owned state for the members admin table: search, pagination, selection, delete and edit.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Sessions", "description": "Table sessions and intents"},
        {"name": "System", "description": "Health and instrumentation"}
    ],
    "paths": {
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a table session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Current view of a table session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Close a table session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Closed"},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/intents": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Dispatch one intent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed intent", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/export": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Export the filtered view",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "IntentRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "enum": ["search_term_changed", "row_checkbox_toggled", "select_all_toggled", "edit_requested", "delete_requested", "delete_selected_requested", "page_changed", "edit_field_changed", "edit_confirmed", "edit_modal_dismissed"]
                },
                "id": {"type": "integer"},
                "checked": {"type": "boolean"},
                "term": {"type": "string"},
                "page": {"type": "integer", "minimum": 1},
                "nav": {"type": "string", "enum": ["first", "previous", "next", "last"]},
                "field": {"type": "string", "enum": ["name", "email", "role"]},
                "value": {"type": "string"}
            },
            "required": ["type"]
        },
        "Member": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "RowView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "checked": {"type": "boolean"}
            }
        },
        "PageView": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "page_count": {"type": "integer"},
                "pages": {"type": "array", "items": {"type": "integer"}},
                "filtered_count": {"type": "integer"},
                "total_count": {"type": "integer"},
                "first_disabled": {"type": "boolean"},
                "previous_disabled": {"type": "boolean"},
                "next_disabled": {"type": "boolean"},
                "last_disabled": {"type": "boolean"}
            }
        },
        "EditView": {
            "type": "object",
            "properties": {
                "open": {"type": "boolean"},
                "draft": {"$ref": "#/definitions/Member"}
            }
        },
        "TableView": {
            "type": "object",
            "properties": {
                "search_term": {"type": "string"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/RowView"}},
                "select_all_checked": {"type": "boolean"},
                "selected_ids": {"type": "array", "items": {"type": "integer"}},
                "delete_selected_enabled": {"type": "boolean"},
                "pagination": {"$ref": "#/definitions/PageView"},
                "edit": {"$ref": "#/definitions/EditView"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
