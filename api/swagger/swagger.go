package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HelpFurr Adopt API",
        "description": "Submission and moderation workflows for the HelpFurr adoption marketplace",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Derived views of the approved dogs catalog"},
        {"name": "Applications", "description": "Adoption application intake"},
        {"name": "Moderation", "description": "Admin listing actions"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/dogs": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List adoptable dogs",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive substring over name/color/gender"},
                    {"name": "color", "in": "query", "type": "string", "description": "Exact color filter"},
                    {"name": "gender", "in": "query", "type": "string", "description": "Exact gender filter"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["age-asc", "age-desc", "name-asc", "name-desc"]}
                ],
                "responses": {
                    "200": {"description": "Derived catalog view"},
                    "502": {"description": "Upstream unavailable"}
                }
            }
        },
        "/dogs/export": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Export the catalog view as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Rendered export"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/applications": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an adoption application",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Application submitted"},
                    "400": {"description": "Incomplete form, invalid email, or self-adoption"},
                    "409": {"description": "Duplicate submission in flight"},
                    "502": {"description": "Upstream unavailable"}
                }
            }
        },
        "/listings/{id}/approve": {
            "put": {
                "tags": ["Moderation"],
                "summary": "Approve a pending listing",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Listing approved"},
                    "409": {"description": "Action already in flight"},
                    "502": {"description": "Upstream unavailable"}
                }
            }
        },
        "/listings/{id}": {
            "delete": {
                "tags": ["Moderation"],
                "summary": "Reject a listing, cascading over its applications",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Listing and applications deleted"},
                    "409": {"description": "Action already in flight"},
                    "502": {"description": "Upstream unavailable"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "HelpFurr Adopt API",
	Description:      "Submission and moderation workflows for the HelpFurr adoption marketplace",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
