// Package applicantsdk provides the request/response types of the applicant
// service's HTTP API and a small client for calling it. The server's HTTP
// handlers and external consumers share these types so the wire contract
// lives in one place.
package applicantsdk
