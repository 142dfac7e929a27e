package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Management API",
        "description": "Backend for the school management system: admins, teachers, students, classes, subjects, attendance, exam results, notices and complaints.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Admin", "description": "School account registration and profile"},
        {"name": "Students", "description": "Enrolment, attendance and exam results"},
        {"name": "Teachers", "description": "Teaching staff and subject assignment"},
        {"name": "Classes", "description": "Class groupings"},
        {"name": "Subjects", "description": "Academic subjects"},
        {"name": "Notices", "description": "School announcements"},
        {"name": "Complaints", "description": "User grievances"}
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
        "/AdminReg": {
            "post": {
                "tags": ["Admin"],
                "summary": "Register a school account",
                "consumes": ["application/json", "multipart/form-data"],
                "responses": {
                    "201": {"description": "Created admin"},
                    "200": {"description": "Duplicate email or school name message"}
                }
            }
        },
        "/AdminLogin": {
            "post": {
                "tags": ["Admin"],
                "summary": "Authenticate a school account",
                "responses": {
                    "200": {"description": "Admin record, or a message outcome"}
                }
            }
        },
        "/Admin/{id}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Get a school account",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Admin record"}
                }
            }
        },
        "/AdminUpdate/{id}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update a school account",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated admin"}
                }
            }
        },
        "/StudentReg": {
            "post": {
                "tags": ["Students"],
                "summary": "Enrol a student",
                "responses": {
                    "201": {"description": "Created student"},
                    "400": {"description": "Roll or admission number already exists"}
                }
            }
        },
        "/StudentLogin": {
            "post": {
                "tags": ["Students"],
                "summary": "Authenticate a student",
                "responses": {
                    "200": {"description": "Student record without attendance or results"},
                    "401": {"description": "Invalid password"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/Students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "List a school's students",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Students"},
                    "404": {"description": "No students found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete all of a school's students",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted count"}
                }
            }
        },
        "/Student/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student with records",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Student with attendance, results and fees"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update a student",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated student"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted student"}
                }
            }
        },
        "/StudentAttendance/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Record one day's attendance for a subject",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Student with refreshed attendance"}
                }
            }
        },
        "/UpdateExamResult/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Record a subject's exam marks",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Student with refreshed results"}
                }
            }
        },
        "/TeacherReg": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Register a teacher",
                "responses": {
                    "201": {"description": "Created teacher"},
                    "200": {"description": "Duplicate email message"}
                }
            }
        },
        "/TeacherLogin": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Authenticate a teacher",
                "responses": {
                    "200": {"description": "Teacher record, or a message outcome"}
                }
            }
        },
        "/Teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List a school's teachers",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Teachers, or an empty-list message"}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete all of a school's teachers",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted count"}
                }
            }
        },
        "/TeacherSubject": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Assign a subject to a teacher",
                "responses": {
                    "200": {"description": "Teacher with the new assignment"}
                }
            }
        },
        "/TeacherAttendance/{id}": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Record a teacher's attendance for a day",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Teacher with refreshed attendance"}
                }
            }
        },
        "/SclassCreate": {
            "post": {
                "tags": ["Classes"],
                "summary": "Create a class",
                "responses": {
                    "201": {"description": "Created class"},
                    "200": {"description": "Duplicate name message"}
                }
            }
        },
        "/SclassList/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "List a school's classes",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Classes, or an empty-list message"}
                }
            }
        },
        "/Sclass/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get a class",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Class detail"}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete a class and everything in it",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Cascade summary"}
                }
            }
        },
        "/SubjectCreate": {
            "post": {
                "tags": ["Subjects"],
                "summary": "Add subjects to a class",
                "responses": {
                    "201": {"description": "Created subjects"},
                    "200": {"description": "Duplicate name message"}
                }
            }
        },
        "/FreeSubjectList/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List a class's unassigned subjects",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Subjects without a teacher"}
                }
            }
        },
        "/NoticeCreate": {
            "post": {
                "tags": ["Notices"],
                "summary": "Post a notice",
                "responses": {
                    "201": {"description": "Created notice"}
                }
            }
        },
        "/NoticeList/{id}": {
            "get": {
                "tags": ["Notices"],
                "summary": "List a school's notices",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Notices, or an empty-list message"}
                }
            }
        },
        "/ComplainCreate": {
            "post": {
                "tags": ["Complaints"],
                "summary": "File a complaint",
                "responses": {
                    "201": {"description": "Created complaint"}
                }
            }
        },
        "/ComplainList/{id}": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List a school's complaints",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Complaints, or an empty-list message"}
                }
            }
        }
    },
    "definitions": {
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
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
