package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TSMA Calendar Fixture API",
        "description": "Seeded stand-in for the Mountainland calendar service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Credential exchange"},
        {"name": "Calendar", "description": "Cohort calendar days"},
        {"name": "Assignments", "description": "Assignments, progress and FAQs"},
        {"name": "Lessons", "description": "Lesson outlines and feedback"}
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
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange email and password for a bearer token",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "password", "in": "formData", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/calendar/today": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get today's calendar entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "cohort", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarEntry"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/calendar/all": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List every calendar entry of a cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "cohort", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/CalendarEntry"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/assignment/all": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments of a cohort",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "cohort", "in": "query", "required": true, "type": "string"},
                    {"name": "includeProgress", "in": "query", "type": "boolean"},
                    {"name": "includeFAQs", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/assignment/{id}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Get assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "includeProgress", "in": "query", "type": "boolean"},
                    {"name": "includeFAQs", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Assignment"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/assignment/progress": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Set assignment progress",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProgressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Assignment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Assignments"],
                "summary": "Clear assignment progress",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteProgressRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/faq": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Ask a question about an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FAQRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/FAQ"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/lesson/{lessonID}": {
            "get": {
                "tags": ["Lessons"],
                "summary": "Get lesson outline",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "lessonID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LessonOutline"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/lesson/feedback": {
            "post": {
                "tags": ["Lessons"],
                "summary": "Send lesson feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LessonFeedbackRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginResponse": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "userUUID": {"type": "string"},
                "secret": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "CalendarEntry": {
            "type": "object",
            "required": ["id", "date"],
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "holiday": {"type": "boolean"},
                "lessonID": {"type": "string"},
                "lessonName": {"type": "string"},
                "mainObjective": {"type": "string"},
                "readingDue": {"type": "string"},
                "assignmentsDue": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}},
                "newAssignments": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}},
                "codeChallengeName": {"type": "string"},
                "wordOfTheDay": {"type": "string"}
            }
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "assignmentID": {"type": "string"},
                "name": {"type": "string"},
                "dueOn": {"type": "string", "format": "date-time"},
                "lessonID": {"type": "string"},
                "assignmentType": {"type": "string", "enum": ["lab", "project", "peerReview"]},
                "description": {"type": "string"},
                "progress": {"type": "string", "enum": ["notStarted", "inProgress", "complete"]},
                "completedOn": {"type": "string", "format": "date-time"},
                "faqs": {"type": "array", "items": {"$ref": "#/definitions/FAQ"}}
            }
        },
        "FAQ": {
            "type": "object",
            "required": ["id", "question", "lastEditedOn"],
            "properties": {
                "id": {"type": "string"},
                "assignmentID": {"type": "string"},
                "lessonID": {"type": "string"},
                "question": {"type": "string"},
                "answer": {"type": "string"},
                "lastEditedOn": {"type": "string", "format": "date-time"},
                "lastEditedBy": {"type": "string"}
            }
        },
        "LessonOutline": {
            "type": "object",
            "required": ["lessonID", "lessonName"],
            "properties": {
                "lessonID": {"type": "string"},
                "lessonName": {"type": "string"},
                "mainObjective": {"type": "string"},
                "objectives": {"type": "array", "items": {"type": "string"}},
                "readingDue": {"type": "string"},
                "outline": {"type": "string"},
                "assignments": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}}
            }
        },
        "ProgressRequest": {
            "type": "object",
            "required": ["assignmentID", "progress"],
            "properties": {
                "assignmentID": {"type": "string"},
                "progress": {"type": "string", "enum": ["notStarted", "inProgress", "complete"]}
            }
        },
        "DeleteProgressRequest": {
            "type": "object",
            "required": ["assignmentID"],
            "properties": {
                "assignmentID": {"type": "string"}
            }
        },
        "FAQRequest": {
            "type": "object",
            "required": ["assignmentID", "question"],
            "properties": {
                "assignmentID": {"type": "string"},
                "question": {"type": "string"},
                "answer": {"type": "string"}
            }
        },
        "LessonFeedbackRequest": {
            "type": "object",
            "required": ["lessonID", "feedback"],
            "properties": {
                "lessonID": {"type": "string"},
                "feedback": {"type": "string"}
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
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
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
