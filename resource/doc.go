// Package resource limits how many score files are loaded in parallel and how
// fast they are read.
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentLoads: 4,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//	data := mertio.NewScoreData("BLEU", mertio.WithResourceController(rc))
//	err := data.LoadFiles(ctx, paths)
package resource
