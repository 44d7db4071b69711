// Package http implements the HTTP handlers of the report server. Handlers
// stay thin: they parse and validate the request, call a service and format
// the response.
//
// # Endpoints
//
//	GET /api/health          liveness summary {status, version, time}
//	GET /api/health/ready    503 until every configured input resolves
//	GET /api/health/live     runtime details
//	GET /api/version         build information
//	GET /api/report          reconcile the configured inputs
//	GET /api/metrics         Prometheus exposition
//
// /api/report accepts start, end (YYYY-MM-DD), station and format (json or
// csv). A JSON response carries run_id, rows and diagnostics.
//
// # Error Handling
//
// Errors are rendered as RFC 7807 problem details by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Request validation failed",
//	    "instance": "/api/report",
//	    "error_code": "VALIDATION_FAILED"
//	}
//
// Invalid parameters are 400. A required column missing from an input is 422.
package http
