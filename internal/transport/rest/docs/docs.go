// Package docs registers the OpenAPI description of the HTTP API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {
            "post": {
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {"201": {"description": "token and user"}, "400": {"description": "invalid email, password or role"}, "409": {"description": "email already registered"}}
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Obtain a token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials"}, "429": {"description": "too many requests"}}
            }
        },
        "/auth/logout": {
            "post": {
                "summary": "Revoke the current token",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "token revoked"}, "401": {"description": "missing, invalid or already revoked token"}}
            }
        },
        "/me": {
            "get": {"summary": "Current profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}}},
            "put": {"summary": "Update profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}, "400": {"description": "invalid profile update"}}}
        },
        "/questionnaires": {
            "get": {"summary": "List questionnaire variants", "responses": {"200": {"description": "variants with age groups"}}}
        },
        "/questionnaires/{variant}/groups/{group}": {
            "get": {
                "summary": "Questions of an age group",
                "parameters": [
                    {"in": "path", "name": "variant", "type": "string", "required": true},
                    {"in": "path", "name": "group", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "age group"}, "400": {"description": "unknown variant or age group"}}
            }
        },
        "/score": {
            "post": {
                "summary": "Score answers without storing them",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ScoreRequest"}}],
                "responses": {"200": {"description": "evaluation"}, "400": {"description": "unknown age group or invalid answer"}}
            }
        },
        "/evaluations": {
            "post": {"summary": "Score answers and store the result", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "result"}}}
        },
        "/sessions": {
            "post": {"summary": "Start a guided questionnaire", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "session"}}}
        },
        "/sessions/{id}": {
            "get": {"summary": "Session state", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "session"}, "404": {"description": "session not found"}}},
            "delete": {"summary": "Cancel a session", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "cancelled"}}}
        },
        "/sessions/{id}/answers": {
            "post": {"summary": "Answer the current question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "session"}, "400": {"description": "option index out of range"}, "409": {"description": "session not in progress"}}}
        },
        "/sessions/{id}/previous": {
            "post": {"summary": "Go back one question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "session"}, "409": {"description": "already at the first question"}}}
        },
        "/results": {
            "get": {"summary": "Result history, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "result summaries"}}}
        },
        "/results/{id}": {
            "get": {"summary": "One result", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "result"}, "403": {"description": "not the owner"}, "404": {"description": "result not found"}}}
        },
        "/results/{id}/report.pdf": {
            "get": {"summary": "Printable report", "produces": ["application/pdf"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "PDF document"}}}
        },
        "/dashboard": {
            "get": {"summary": "Summary of the user's results", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "dashboard"}}}
        },
        "/guides": {
            "get": {"summary": "Parent guidance content", "responses": {"200": {"description": "catalog"}}}
        },
        "/guides/resources": {
            "get": {"summary": "External resources", "responses": {"200": {"description": "resource categories"}}}
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "displayName": {"type": "string"},
                "role": {"type": "string", "enum": ["parent", "educator", "student"]}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "ScoreRequest": {
            "type": "object",
            "properties": {
                "variantId": {"type": "string"},
                "ageGroupId": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "MenteAzul Q-CHAT API",
	Description:      "Autism screening questionnaires, scoring and result history",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
