// Package docs is generated by swaggo/swag from the controller annotations.
// Regenerate with `swag init` instead of editing by hand.
package docs

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
        "/api/accounts/pending": {
            "get": {
                "summary": "Pending registrations the caller may review",
                "description": "VP sees every pending account; a Manager sees Staff of their division and its sub-divisions.",
                "tags": [
                    "accounts"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            }
        },
        "/api/accounts/review": {
            "post": {
                "summary": "Approve or reject a pending account",
                "tags": [
                    "accounts"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Decision",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountReviewRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "409": {
                        "description": "Already reviewed"
                    }
                }
            }
        },
        "/api/activities": {
            "post": {
                "summary": "Record an action on your schedule",
                "description": "cancel requires a reason; hold notifies the division Manager.",
                "tags": [
                    "activities"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Action",
                        "schema": {
                            "$ref": "#/definitions/dto.ActivityRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            },
            "get": {
                "summary": "Activities visible to the caller",
                "tags": [
                    "activities"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/activities/progress-update": {
            "post": {
                "summary": "Add a progress note to your activity",
                "tags": [
                    "activities"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "activity_id",
                        "in": "formData",
                        "required": true,
                        "description": "Activity ID",
                        "type": "string"
                    },
                    {
                        "name": "update_text",
                        "in": "formData",
                        "required": true,
                        "description": "Progress text",
                        "type": "string"
                    },
                    {
                        "name": "latitude",
                        "in": "formData",
                        "required": false,
                        "description": "Latitude",
                        "type": "number"
                    },
                    {
                        "name": "longitude",
                        "in": "formData",
                        "required": false,
                        "description": "Longitude",
                        "type": "number"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": false,
                        "description": "Photo",
                        "type": "file"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            }
        },
        "/api/activities/schedule/{id}": {
            "get": {
                "summary": "Activity status and progress of one schedule",
                "tags": [
                    "activities"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Schedule ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/activities/today": {
            "get": {
                "summary": "Today's schedules with their activity status",
                "tags": [
                    "activities"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/activity-categories": {
            "get": {
                "summary": "Activity categories",
                "tags": [
                    "categories"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Create an activity category",
                "tags": [
                    "categories"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Category",
                        "schema": {
                            "$ref": "#/definitions/dto.CategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "403": {
                        "description": "SuperUser only"
                    },
                    "409": {
                        "description": "Name taken"
                    }
                }
            }
        },
        "/api/activity-categories/{id}": {
            "delete": {
                "summary": "Delete an activity category",
                "tags": [
                    "categories"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Category ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "summary": "Log in",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Credentials",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Invalid email or password"
                    },
                    "403": {
                        "description": "Account pending or rejected"
                    }
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "summary": "Current user",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/auth/profile": {
            "put": {
                "summary": "Update username and/or password",
                "description": "Any change requires current_password; new_password must equal confirm_password.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Changes",
                        "schema": {
                            "$ref": "#/definitions/dto.ProfileUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/auth/profile/photo": {
            "post": {
                "summary": "Upload a profile photo",
                "description": "The image is stored base64-encoded on the user record.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "photo",
                        "in": "formData",
                        "required": true,
                        "description": "Image",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "summary": "Register an account",
                "description": "Staff and Manager accounts start pending and notify their reviewer; other roles are approved immediately.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Account",
                        "schema": {
                            "$ref": "#/definitions/dto.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "summary": "Landing page data for the caller",
                "description": "Sections the caller's role has no use for are empty.",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications": {
            "get": {
                "summary": "Latest notifications of the caller",
                "tags": [
                    "notifications"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/unread-count": {
            "get": {
                "summary": "Number of unread notifications",
                "tags": [
                    "notifications"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/notifications/{id}/read": {
            "post": {
                "summary": "Mark one of your notifications read",
                "tags": [
                    "notifications"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Notification ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/reports": {
            "post": {
                "summary": "Submit a report",
                "description": "The report enters the approval chain at the stage matching the submitter's role.",
                "tags": [
                    "reports"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "title",
                        "in": "formData",
                        "required": true,
                        "description": "Title",
                        "type": "string"
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "required": true,
                        "description": "Description",
                        "type": "string"
                    },
                    {
                        "name": "category_id",
                        "in": "formData",
                        "required": false,
                        "description": "Activity category",
                        "type": "string"
                    },
                    {
                        "name": "site_id",
                        "in": "formData",
                        "required": false,
                        "description": "Site",
                        "type": "string"
                    },
                    {
                        "name": "ticket_id",
                        "in": "formData",
                        "required": false,
                        "description": "Ticket",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Attachment",
                        "type": "file"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "get": {
                "summary": "List reports",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "site_id",
                        "in": "query",
                        "required": false,
                        "description": "Filter by site",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/reports/approve": {
            "post": {
                "summary": "Approve a report or send it back for revision",
                "description": "Only the report's current approver may act; a second concurrent decision gets 409.",
                "tags": [
                    "reports"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Decision",
                        "schema": {
                            "$ref": "#/definitions/dto.ReportApproveRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/api/reports/statistics/user-counts": {
            "get": {
                "summary": "Reports per submitter for a month",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "required": true,
                        "description": "1-12",
                        "type": "integer"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "description": "Year",
                        "type": "integer"
                    },
                    {
                        "name": "category_id",
                        "in": "query",
                        "required": false,
                        "description": "Category, or all",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/reports/{id}": {
            "get": {
                "summary": "Get a report",
                "tags": [
                    "reports"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Report ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "put": {
                "summary": "Edit your report",
                "description": "Editing a report in Revisi resubmits it. Omitted fields are left unchanged; an empty site_id or ticket_id clears the link.",
                "tags": [
                    "reports"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Report ID",
                        "type": "string"
                    },
                    {
                        "name": "title",
                        "in": "formData",
                        "required": false,
                        "description": "Title",
                        "type": "string"
                    },
                    {
                        "name": "description",
                        "in": "formData",
                        "required": false,
                        "description": "Description",
                        "type": "string"
                    },
                    {
                        "name": "site_id",
                        "in": "formData",
                        "required": false,
                        "description": "Site",
                        "type": "string"
                    },
                    {
                        "name": "ticket_id",
                        "in": "formData",
                        "required": false,
                        "description": "Ticket",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": false,
                        "description": "New attachment",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            },
            "delete": {
                "summary": "Delete a report",
                "tags": [
                    "reports"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Report ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            }
        },
        "/api/reports/{id}/comments": {
            "post": {
                "summary": "Comment on a report",
                "tags": [
                    "reports"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Report ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Comment",
                        "schema": {
                            "$ref": "#/definitions/dto.CommentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                }
            }
        },
        "/api/schedules": {
            "post": {
                "summary": "Assign a schedule",
                "description": "The schedule takes the division of the assigned user. Monitoring accounts cannot manage schedules.",
                "tags": [
                    "schedules"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Schedule",
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            },
            "get": {
                "summary": "List schedules",
                "tags": [
                    "schedules"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/schedules/bulk-upload": {
            "post": {
                "summary": "Create schedules from a sheet",
                "description": "Columns user_email, title, description, start_date, end_date. Rows that fail are reported and skipped.",
                "tags": [
                    "schedules"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": ".csv or .xlsx",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/schedules/change-request": {
            "post": {
                "summary": "Ask to move one of your schedules",
                "description": "The Manager responsible for the schedule's division is notified.",
                "tags": [
                    "schedules"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ShiftChangeCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "403": {
                        "description": "Not the schedule owner"
                    }
                }
            }
        },
        "/api/schedules/change-requests": {
            "get": {
                "summary": "Shift change requests visible to the caller",
                "description": "Managers see pending requests in scope, VP all pending, everyone else their own.",
                "tags": [
                    "schedules"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/schedules/change-requests/review": {
            "post": {
                "summary": "Approve or reject a shift change",
                "description": "Approval moves the schedule to the requested times.",
                "tags": [
                    "schedules"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Decision",
                        "schema": {
                            "$ref": "#/definitions/dto.ShiftChangeReviewRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "409": {
                        "description": "Already reviewed"
                    }
                }
            }
        },
        "/api/schedules/{id}": {
            "put": {
                "summary": "Edit a schedule",
                "tags": [
                    "schedules"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Schedule ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Changes",
                        "schema": {
                            "$ref": "#/definitions/dto.ScheduleUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            },
            "delete": {
                "summary": "Delete a schedule",
                "tags": [
                    "schedules"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Schedule ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    }
                }
            }
        },
        "/api/sites": {
            "post": {
                "summary": "Create a site",
                "tags": [
                    "sites"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Site",
                        "schema": {
                            "$ref": "#/definitions/dto.SiteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "get": {
                "summary": "List sites",
                "tags": [
                    "sites"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "active",
                        "in": "query",
                        "required": false,
                        "description": "Only active sites",
                        "type": "boolean"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/sites/{id}": {
            "get": {
                "summary": "Get a site",
                "tags": [
                    "sites"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Site ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "put": {
                "summary": "Update a site",
                "tags": [
                    "sites"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Site ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Changes",
                        "schema": {
                            "$ref": "#/definitions/dto.SiteUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "delete": {
                "summary": "Deactivate a site",
                "description": "Sites are never removed; the status becomes inactive.",
                "tags": [
                    "sites"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Site ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/tickets": {
            "post": {
                "summary": "Open a ticket",
                "description": "The Manager of the assigned division is notified.",
                "tags": [
                    "tickets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Ticket",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "get": {
                "summary": "List tickets",
                "tags": [
                    "tickets"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "site_id",
                        "in": "query",
                        "required": false,
                        "description": "Filter by site",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/tickets/list/all": {
            "get": {
                "summary": "Id and title of every ticket, for pickers",
                "tags": [
                    "tickets"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/tickets/{id}": {
            "get": {
                "summary": "Get a ticket",
                "tags": [
                    "tickets"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "patch": {
                "summary": "Change ticket status or assignee",
                "description": "Closed cannot be set here; use the close action.",
                "tags": [
                    "tickets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Changes",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketPatchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "put": {
                "summary": "Edit ticket details",
                "tags": [
                    "tickets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Changes",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketEditRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/tickets/{id}/close": {
            "post": {
                "summary": "Close a ticket",
                "description": "A linked report must exist and be Final.",
                "tags": [
                    "tickets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/tickets/{id}/comments": {
            "post": {
                "summary": "Comment on a ticket",
                "tags": [
                    "tickets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    },
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "description": "Comment",
                        "schema": {
                            "$ref": "#/definitions/dto.TicketCommentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                }
            }
        },
        "/api/tickets/{id}/link-report/{report_id}": {
            "post": {
                "summary": "Link a report to a ticket",
                "tags": [
                    "tickets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Ticket ID",
                        "type": "string"
                    },
                    {
                        "name": "report_id",
                        "in": "path",
                        "required": true,
                        "description": "Report ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/users": {
            "get": {
                "summary": "Approved users",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/users/by-division/{division}": {
            "get": {
                "summary": "Approved users of one division",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "division",
                        "in": "path",
                        "required": true,
                        "description": "Division",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/users/{id}": {
            "delete": {
                "summary": "Delete a user",
                "tags": [
                    "users"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "User ID",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "SuperUser only; never self"
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.AccountReviewRequest": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                }
            }
        },
        "dto.ActivityRequest": {
            "type": "object",
            "properties": {
                "schedule_id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "latitude": {
                    "type": "number"
                },
                "longitude": {
                    "type": "number"
                }
            }
        },
        "dto.CategoryRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.CommentRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "dto.CountResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "current_password": {
                    "type": "string"
                },
                "new_password": {
                    "type": "string"
                },
                "confirm_password": {
                    "type": "string"
                }
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "division": {
                    "type": "string"
                }
            }
        },
        "dto.ReportApproveRequest": {
            "type": "object",
            "properties": {
                "report_id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "comment": {
                    "type": "string"
                }
            }
        },
        "dto.ScheduleRequest": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                },
                "category_id": {
                    "type": "string"
                },
                "site_id": {
                    "type": "string"
                },
                "ticket_id": {
                    "type": "string"
                }
            }
        },
        "dto.ScheduleUpdateRequest": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                },
                "site_id": {
                    "type": "string"
                }
            }
        },
        "dto.ShiftChangeCreateRequest": {
            "type": "object",
            "properties": {
                "schedule_id": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "new_start_date": {
                    "type": "string"
                },
                "new_end_date": {
                    "type": "string"
                }
            }
        },
        "dto.ShiftChangeReviewRequest": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "comment": {
                    "type": "string"
                }
            }
        },
        "dto.SiteRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "dto.SiteUpdateRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "dto.TicketCommentRequest": {
            "type": "object",
            "properties": {
                "comment": {
                    "type": "string"
                }
            }
        },
        "dto.TicketEditRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "assigned_to_division": {
                    "type": "string"
                },
                "site_id": {
                    "type": "string"
                }
            }
        },
        "dto.TicketOption": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "dto.TicketPatchRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                }
            }
        },
        "dto.TicketRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "assigned_to_division": {
                    "type": "string"
                },
                "site_id": {
                    "type": "string"
                }
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "token_type": {
                    "type": "string"
                },
                "user": {
                    "type": "object"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Flux API",
	Description:      "Field-operations scheduling, reporting and approval backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
