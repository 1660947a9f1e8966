// Package fs provides the filesystem seam used by path-based load and save.
//
//   - [LocalFS]: production implementation backed by the os package
//   - [FaultyFS]: test wrapper that injects open/read/write/sync/close errors
//     and counts open handles
//
// Production code uses fs.Default:
//
//	f, err := fs.CreateAll(fs.Default, "out/scores.dat")
//
// Tests swap in a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("scores", fs.Fault{FailAfterBytes: 16, FailAfterRead: -1})
//
// Operations take no context.Context: local file calls are not interruptible
// at the syscall level.
package fs
