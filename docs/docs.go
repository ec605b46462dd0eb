// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate it from the handler annotations with go generate.
package docs

//go:generate swag init -d .. -g cmd/server/main.go -o . --outputTypes go

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
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains token, token_type, and user", "schema": {"$ref": "#/definitions/controllers.LoginSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up a new user",
                "parameters": [
                    {"description": "Sign-up data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/files": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload a banner image",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "data contains the stored file", "schema": {"$ref": "#/definitions/controllers.FileSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/files/{path}": {
            "get": {
                "produces": ["image/png", "image/jpeg"],
                "tags": ["files"],
                "summary": "Download a file",
                "parameters": [
                    {"type": "string", "description": "Stored file name", "name": "path", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/meetups": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["meetups"],
                "summary": "List meetups",
                "parameters": [
                    {"type": "string", "description": "Day filter, YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 10, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "data contains meetups and pagination",
                        "schema": {"$ref": "#/definitions/controllers.MeetupListSuccessResponse"},
                        "headers": {"X-Total-Count": {"type": "integer", "description": "Total number of matching meetups"}}
                    },
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["meetups"],
                "summary": "Create a meetup",
                "parameters": [
                    {"description": "Meetup data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateMeetupRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created meetup", "schema": {"$ref": "#/definitions/controllers.MeetupSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/meetups/{meetupID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["meetups"],
                "summary": "Get a meetup",
                "parameters": [
                    {"type": "string", "description": "Meetup ID (UUID)", "name": "meetupID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains the meetup", "schema": {"$ref": "#/definitions/controllers.MeetupSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["meetups"],
                "summary": "Update a meetup",
                "parameters": [
                    {"type": "string", "description": "Meetup ID (UUID)", "name": "meetupID", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateMeetupRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated meetup", "schema": {"$ref": "#/definitions/controllers.MeetupSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["meetups"],
                "summary": "Delete a meetup",
                "parameters": [
                    {"type": "string", "description": "Meetup ID (UUID)", "name": "meetupID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/meetups/{meetupID}/subscriptions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Subscribe to a meetup",
                "parameters": [
                    {"type": "string", "description": "Meetup ID (UUID)", "name": "meetupID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "data contains the subscription", "schema": {"$ref": "#/definitions/controllers.SubscriptionSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["subscriptions"],
                "summary": "Cancel a subscription",
                "parameters": [
                    {"type": "string", "description": "Meetup ID (UUID)", "name": "meetupID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/organizing": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["meetups"],
                "summary": "List my upcoming meetups",
                "responses": {
                    "200": {"description": "data contains the meetups", "schema": {"$ref": "#/definitions/controllers.MeetupsSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/subscriptions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "List my upcoming subscriptions",
                "responses": {
                    "200": {
                        "description": "data contains the subscriptions",
                        "schema": {"$ref": "#/definitions/controllers.SubscriptionListSuccessResponse"},
                        "headers": {"X-Total-Count": {"type": "integer", "description": "Number of subscriptions returned"}}
                    },
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "data contains the user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.CreateMeetupRequest": {
            "type": "object",
            "properties": {
                "banner_id": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "controllers.FileSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.File"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "controllers.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.LoginResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.MeetupListResponse": {
            "type": "object",
            "properties": {
                "meetups": {"type": "array", "items": {"$ref": "#/definitions/domain.Meetup"}},
                "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}
            }
        },
        "controllers.MeetupListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.MeetupListResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.MeetupSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Meetup"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.MeetupsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Meetup"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.SignUpRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.SubscriptionListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.SubscriptionWithMeetup"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.SubscriptionSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Subscription"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.UpdateMeetupRequest": {
            "type": "object",
            "properties": {
                "banner_id": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "controllers.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "confirm_password": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "old_password": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.UserSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.User"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.File": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "path": {"type": "string"},
                "updated_at": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "domain.Meetup": {
            "type": "object",
            "properties": {
                "banner": {"$ref": "#/definitions/domain.File"},
                "banner_id": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "organizer": {"$ref": "#/definitions/domain.Organizer"},
                "owner_id": {"type": "string"},
                "past": {"type": "boolean"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Organizer": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "domain.Subscription": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "meetup_id": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "domain.SubscriptionWithMeetup": {
            "type": "object",
            "properties": {
                "meetup": {"$ref": "#/definitions/domain.Meetup"},
                "subscription": {"$ref": "#/definitions/domain.Subscription"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "helpers.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Meetapp API",
	Description:      "Meetup scheduling API: organizers publish meetups, attendees subscribe to them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
