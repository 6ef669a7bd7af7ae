// Package version reports the build version of the splice binary.
//
// Values are injected with -ldflags and fall back to the VCS stamp Go
// records in the binary:
//
//	go build -ldflags "-X github.com/Nytra/EnumerableToolkit/version.Version=1.2.0" ./cmd/splice
package version
