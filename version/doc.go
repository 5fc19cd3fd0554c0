// Package version reports build information for the dataprovider binary.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/dataprovider/version.Version=1.2.0" ./cmd/dataprovider
//
// Missing values are filled from the module build info when available.
package version
