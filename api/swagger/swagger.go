package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "InForms Board Gateway",
        "description": "Interactive exam scheduling board over the scheduling API",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Board", "description": "Board snapshot and drag gestures"},
        {"name": "Versions", "description": "Schedule version management"},
        {"name": "Students", "description": "Student roster and per-student schedules"},
        {"name": "Export", "description": "Schedule downloads"}
    ],
    "paths": {
        "/board": {
            "get": {
                "tags": ["Board"],
                "summary": "Current board snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Board not loaded"}
                }
            }
        },
        "/board/drag": {
            "post": {
                "tags": ["Board"],
                "summary": "Begin dragging an assignment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BeginDragRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/board/drag/end": {
            "post": {
                "tags": ["Board"],
                "summary": "End the current drag gesture",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/drop": {
            "post": {
                "tags": ["Board"],
                "summary": "Drop the dragged assignment onto a calendar cell",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DropRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/board/save": {
            "put": {
                "tags": ["Board"],
                "summary": "Persist the full board state upstream",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream error"}
                }
            }
        },
        "/board/refresh": {
            "post": {
                "tags": ["Board"],
                "summary": "Re-fetch all board collections from upstream",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/versions": {
            "get": {
                "tags": ["Versions"],
                "summary": "List schedule versions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Versions"],
                "summary": "Create a schedule version",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VersionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/versions/{id}/duplicate": {
            "post": {
                "tags": ["Versions"],
                "summary": "Duplicate a schedule version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VersionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/versions/{id}/activate": {
            "post": {
                "tags": ["Versions"],
                "summary": "Switch the board to another version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown version"}
                }
            }
        },
        "/versions/{id}": {
            "delete": {
                "tags": ["Versions"],
                "summary": "Delete a schedule version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Last remaining version"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/schedule": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-student schedule and conflicts",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student"}
                }
            }
        },
        "/export/schedule.csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the board as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/export/schedule.pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the board as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "BeginDragRequest": {
            "type": "object",
            "required": ["assignment_id"],
            "properties": {
                "assignment_id": {"type": "integer"}
            }
        },
        "DropRequest": {
            "type": "object",
            "required": ["date", "time_range"],
            "properties": {
                "date": {"type": "string", "example": "2026-05-11"},
                "time_range": {"type": "string", "example": "09:00-11:00"}
            }
        },
        "VersionRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
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
