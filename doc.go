// Package mpjsonapi lets one JSON:API endpoint accept both plain JSON:API
// requests and multipart/form-data uploads that bundle a resource document
// with a binary file.
//
// A Listener sits in front of the crud save pipeline. For every request it
// asks the Negotiator for a HandlingPath:
//
//   - DelegatedJSONAPIPath: the request is handed unchanged to the JSON:API
//     delegate (crud.JSONAPIListener by default).
//   - MultipartPath: the body is split into parts, the required "entity" and
//     "file" parts are extracted, the entity document becomes the request
//     payload and EventFileUploaded is dispatched with the raw file part.
//
// A file collaborator subscribed to EventFileUploaded stores the file and
// reports extra attributes by dispatching EventFileProcessed with a FieldSet
// on the same request. The per-request Hook merges that FieldSet into the
// entity right before it is saved:
//
//	uploads := crud.SubscriberFunc(func(req *crud.Request) {
//		req.Events.On(mpjsonapi.EventFileUploaded, func(ctx context.Context, e *event.Event) error {
//			up, _ := event.DataAs[*mpjsonapi.FileUploaded](e)
//			url, err := store(ctx, up.Part)
//			if err != nil {
//				return err
//			}
//			return req.Events.Dispatch(ctx, event.New(mpjsonapi.EventFileProcessed, nil,
//				mpjsonapi.FieldSet{"fileUrl": url}))
//		})
//	})
//
//	action := crud.NewAction("widgets", store,
//		crud.WithListener(mpjsonapi.NewListener()),
//		crud.WithSubscribers(uploads),
//	)
//
// All adapter failures are client errors carrying a core.HTTPError with
// status 400. Errors returned by event listeners are propagated unchanged.
package mpjsonapi
