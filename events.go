package mpjsonapi

import (
	"github.com/dmitrymomot/mpjsonapi/binder"
	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
)

// Events dispatched on crud.Request.Events.
const (
	// EventFileUploaded carries *FileUploaded. It is dispatched once per multipart request.
	EventFileUploaded event.Name = "mpjsonapi.fileUploaded"
	// EventFileProcessed is dispatched by the file collaborator with a FieldSet.
	EventFileProcessed event.Name = "mpjsonapi.fileProcessed"
)

// FileUploaded is the data of EventFileUploaded.
type FileUploaded struct {
	Request *crud.Request
	// Part is the raw "file" part, body unchanged.
	Part *binder.Part
}
