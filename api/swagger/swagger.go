package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Console Gateway",
        "description": "Backend-for-frontend for the school admin console.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Auth"},
        {"name": "Dashboard"},
        {"name": "Catalog"},
        {"name": "Users"},
        {"name": "Classes"},
        {"name": "Setups"},
        {"name": "Students"},
        {"name": "Exports"},
        {"name": "Assignments"},
        {"name": "Grading"},
        {"name": "Attendance"},
        {"name": "Notifications"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Renew a session",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create an account",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user and navigation",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Role dashboard counters",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/departments": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List departments",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create department",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/DepartmentRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/departments/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get department",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update department",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/DepartmentRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete department",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Course summaries",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/manageable": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Courses offered by the teacher's department",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "role", "type": "string", "enum": ["Admin", "Teacher", "Student"]},
                    {"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/activate": {
            "put": {
                "tags": ["Users"],
                "summary": "Activate user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "description": "User id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/deactivate": {
            "put": {
                "tags": ["Users"],
                "summary": "Deactivate user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "description": "User id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "description": "User id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Class summaries",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/students": {
            "get": {
                "tags": ["Classes"],
                "summary": "Class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Replace class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ClassStudentsRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/setups": {
            "get": {
                "tags": ["Setups"],
                "summary": "Subject setups of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Setups"],
                "summary": "Save subject setups",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SaveSetupsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/setup-options": {
            "get": {
                "tags": ["Setups"],
                "summary": "Courses and teachers offered in the setup form",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/enrollments/{studentId}": {
            "put": {
                "tags": ["Setups"],
                "summary": "Set a student's courses in a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {"in": "path", "name": "studentId", "required": true, "type": "string", "description": "Student id"},
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/EnrollmentRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-setups": {
            "get": {
                "tags": ["Setups"],
                "summary": "All subject setups",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Student rows",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/overview": {
            "get": {
                "tags": ["Students"],
                "summary": "Academic overview",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "description": "Student id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/classes": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export class summaries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/students": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export student rows",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "Case-insensitive search"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Create assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/AssignmentRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/{id}/students": {
            "get": {
                "tags": ["Grading"],
                "summary": "Submissions of an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/{id}/grade": {
            "post": {
                "tags": ["Grading"],
                "summary": "Grade a submission",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GradeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/{id}/submit": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Submit a file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer", "description": "Resource id"},
                    {"in": "formData", "name": "file", "type": "file", "required": true}
                ],
                "consumes": ["multipart/form-data"],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades": {
            "get": {
                "tags": ["Grading"],
                "summary": "Own grades",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/AttendanceRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/me": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Own attendance",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/stream": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Notification feed as server-sent events",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "query",
                        "name": "access_token",
                        "type": "string",
                        "description": "Session token for clients that cannot set headers"
                    }
                ],
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/ws": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Notification feed over a websocket",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "query",
                        "name": "access_token",
                        "type": "string",
                        "description": "Session token for clients that cannot set headers"
                    }
                ],
                "produces": ["application/json"],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Missing or expired session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role lacks the capability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {"userName": {"type": "string"}, "password": {"type": "string"}},
            "required": ["userName", "password"]
        },
        "RefreshRequest": {"type": "object", "properties": {"refreshToken": {"type": "string"}}, "required": ["refreshToken"]},
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "userName": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["Admin", "Teacher", "Student"]},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"}
            },
            "required": ["userName", "name", "email", "role", "password", "confirmPassword"]
        },
        "DepartmentRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "headDepartmentId": {"type": "string"}},
            "required": ["name"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "description": {"type": "string"},
                "credits": {"type": "integer"},
                "departmentId": {"type": "integer"}
            },
            "required": ["name", "code", "departmentId"]
        },
        "ClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "isActive": {"type": "boolean"},
                "semester": {"type": "integer"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "departmentId": {"type": "integer"}
            },
            "required": ["name", "startDate", "endDate", "departmentId"]
        },
        "ClassStudentsRequest": {"type": "object", "properties": {"studentIds": {"type": "array", "items": {"type": "string"}}}},
        "OfferingRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "integer"},
                "teacherIds": {"type": "array", "items": {"type": "string"}},
                "studentIds": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["courseId", "teacherIds"]
        },
        "SaveSetupsRequest": {
            "type": "object",
            "properties": {"offerings": {"type": "array", "items": {"$ref": "#/definitions/OfferingRequest"}}}
        },
        "EnrollmentRequest": {"type": "object", "properties": {"courseIds": {"type": "array", "items": {"type": "integer"}}}},
        "AssignmentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "classId": {"type": "integer"}
            },
            "required": ["title", "dueDate", "classId"]
        },
        "GradeRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "grade": {"type": "number"},
                "remarks": {"type": "string"},
                "isVisibleToStudent": {"type": "boolean"}
            },
            "required": ["studentId"]
        },
        "AttendanceRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "integer"},
                "studentId": {"type": "string"},
                "status": {"type": "string", "enum": ["Present", "Absent", "Late"]}
            },
            "required": ["classId", "studentId", "status"]
        },
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "ResponseEnvelope": {
            "type": "object",
            "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object"}}
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
