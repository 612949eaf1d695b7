package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Terms API",
        "description": "Read-only access to academic terms",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Terms", "description": "Academic terms"}
    ],
    "paths": {
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TermCollection"}},
                    "500": {"description": "Lookup failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/current": {
            "get": {
                "tags": ["Terms"],
                "summary": "Get current term code",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Lookup failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/{termCode}": {
            "get": {
                "tags": ["Terms"],
                "summary": "Get term by code",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "termCode", "in": "path", "required": true, "type": "string", "pattern": "^[0-9]{6}$"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TermDocument"}},
                    "400":{"description": "Invalid term code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Term not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Lookup failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Links": {
            "type": "object",
            "properties": {
                "self": {"type": "string"}
            }
        },
        "TermAttributes": {
            "type": "object",
            "properties": {
                "termCode": {"type": "string"},
                "description": {"type": "string"},
                "startDate": {"type": "string", "format": "date", "x-nullable": true},
                "endDate": {"type": "string", "format": "date", "x-nullable": true},
                "academicYear": {"type": "string", "x-nullable": true},
                "academicYearDescription": {"type": "string", "x-nullable": true},
                "financialAidYear": {"type": "string", "x-nullable": true},
                "housingStartDate": {"type": "string", "format": "date", "x-nullable": true},
                "housingEndDate": {"type": "string", "format": "date", "x-nullable": true},
                "status": {"type": "string", "enum": ["current", "past", "future"]}
            }
        },
        "TermResource": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "attributes": {"$ref": "#/definitions/TermAttributes"},
                "links": {"$ref": "#/definitions/Links"}
            }
        },
        "TermDocument": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/TermResource"},
                "links": {"$ref": "#/definitions/Links"}
            }
        },
        "TermCollection": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/TermResource"}},
                "links": {"$ref": "#/definitions/Links"}
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
