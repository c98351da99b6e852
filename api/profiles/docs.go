// Package profiles registers the Swagger document for the JSON API. It uses
// the swag docs.go layout and is kept in step with the annotations in
// internal/profiles/http by hand; docs_test.go checks the two agree.
package profiles

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/profiles"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/users": {
            "get": {
                "description": "Returns every registered user, newest first. There is no pagination.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "users, count",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ListUsersResponse"
                        }
                    },
                    "429": {
                        "description": "error, error_description",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "description": "Returns a single user by numeric id.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Users"
                ],
                "summary": "Get user",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "user",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.UserResponse"
                        }
                    },
                    "400": {
                        "description": "id is not an unsigned integer",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "user not found",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "error, error_description",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Returns 200 with uptime and version whenever the process is serving",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Checks that the database answers. Returns 503 with status \"degraded\" when it does not.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/profilesdk.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "profilesdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "error_description": {
                    "type": "string"
                }
            }
        },
        "profilesdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                }
            }
        },
        "profilesdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "$ref": "#/definitions/profilesdk.HealthChecks"
                },
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "profilesdk.ListUsersResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "users": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/profilesdk.UserResponse"
                    }
                }
            }
        },
        "profilesdk.UserResponse": {
            "type": "object",
            "properties": {
                "age": {
                    "type": "integer"
                },
                "bio": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "last_name": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Profiles Service API",
	Description:      "Read-only JSON access to registered user profiles, plus health probes.\n\nRegistration and editing happen through the HTML forms served at / and are not part of this API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
