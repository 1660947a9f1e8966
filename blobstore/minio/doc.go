// Package minio stores score files in MinIO or any other S3-compatible server
// through the MinIO Go client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "mert", "run-7")
//	err = data.SaveBlob(ctx, store, "scores", false)
//
// Uploads stream through an io.Pipe; the object is committed on Close.
package minio
