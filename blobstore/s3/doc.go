// Package s3 stores score files in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("mert/run-7"),
//	    s3.WithRegion("eu-west-1"),
//	)
//
//	err = array.SaveBlob(ctx, store, "0.scores.gz", "BLEU", false)
//
// # Features
//
//   - single GET per load (ranged reads are also supported)
//   - streaming multipart uploads through the SDK upload manager
//   - automatic pagination for listing
package s3
