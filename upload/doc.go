// Package upload stores the file of a multipart JSON:API request and reports
// where it went.
//
// A Processor is a crud.Subscriber. For every request it listens for
// mpjsonapi.EventFileUploaded, validates the file part, saves its exact bytes
// through a file.Storage and dispatches mpjsonapi.EventFileProcessed with a
// FieldSet such as {"fileUrl": "https://cdn.example.com/widgets/<uuid>.png"}.
// When the request fails after the file was stored, the file is deleted again.
//
//	proc := upload.NewProcessor(storage, upload.Config{MaxSize: 5 << 20, URLField: "fileUrl"})
//	action := crud.NewAction("widgets", store,
//		crud.WithListener(mpjsonapi.NewListener()),
//		crud.WithSubscribers(proc),
//	)
package upload
