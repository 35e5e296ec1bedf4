// Package requestid tags every request with an id taken from the X-Request-ID
// header or generated as a UUID. The id is echoed in the response header,
// stored in the request context and added to log records and JSON:API error
// objects.
package requestid
