// Package file stores uploaded file contents on the local filesystem or in
// S3-compatible object storage.
//
// Uploads are held in memory: a multipart request body is parsed once and
// each backend receives the exact bytes that were sent.
//
// Storage backends:
//
//   - LocalStorage writes below a base directory and refuses paths that escape it.
//   - S3Storage uses the AWS SDK v2 and works with any S3-compatible service.
//   - MinIOStorage uses the MinIO client.
//
// All backends implement Storage:
//
//	store, err := file.NewLocalStorage("./uploads", "/files/")
//	if err != nil {
//		return err
//	}
//
//	obj, err := store.Save(ctx, file.Upload{
//		Filename: "photo.png",
//		Content:  body,
//	}, "widgets/"+uuid.NewString()+".png")
//	if err != nil {
//		return err
//	}
//	fmt.Println(store.URL(obj.Key))
//
// Validation helpers detect the content type from magic bytes rather than
// trusting the filename:
//
//	if err := file.ValidateSize(int64(len(body)), 5<<20); err != nil {
//		return err
//	}
//	if err := file.ValidateMIMEType(file.DetectMIMEType(body), "image/*"); err != nil {
//		return err
//	}
package file
