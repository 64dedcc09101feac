// Package constants provides shared constants used throughout the boorusync codebase.
// This includes timeouts, paging limits, defaults for the two booru services,
// and other values that should be consistent across the application.
package constants

import "time"

// Service endpoint defaults
const (
	// DefaultBakabooruAPI is the default base URL of the target Bakabooru API
	DefaultBakabooruAPI = "http://localhost:4200/api"

	// DefaultOxibooruAPI is the default base URL of the origin Oxibooru API
	DefaultOxibooruAPI = "https://oxibooru.yelov.net/api"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for a single HTTP request
	DefaultHTTPTimeout = 60 * time.Second

	// ShutdownTimeout bounds cleanup work after the run context is cancelled
	ShutdownTimeout = 5 * time.Second
)

// Paging and matching defaults
const (
	// DefaultPageSize is the default number of posts per page
	DefaultPageSize = 100

	// DefaultStartPage is the first page requested when none is given
	DefaultStartPage = 1

	// TagPageSize is the page size used when loading the full tag listing
	TagPageSize = 500

	// DefaultMaxSimilarDistance is the largest reverse-search distance accepted as a similar match
	DefaultMaxSimilarDistance = 0.05
)

// Category defaults used when the origin has no metadata for a category
const (
	// DefaultCategoryColor is the neutral color given to categories without origin metadata
	DefaultCategoryColor = "#808080"

	// DefaultCategoryOrder is the order given to categories without origin metadata
	DefaultCategoryOrder = 0
)

// Decoder defaults
const (
	// DefaultDJXLPath is the djxl binary looked up on PATH
	DefaultDJXLPath = "djxl"

	// DecodedContentType is the media type produced by the JXL decoder
	DecodedContentType = "image/jpeg"

	// FallbackContentType is sent when a post has no declared media type
	FallbackContentType = "application/octet-stream"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Application identity
const (
	// AppName is used for the config file name, lock files and log fields
	AppName = "boorusync"

	// ServiceBakabooru names the target service in errors and logs
	ServiceBakabooru = "bakabooru"

	// ServiceOxibooru names the origin service in errors and logs
	ServiceOxibooru = "oxibooru"
)
