package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Discovery errors, always recovered locally.
	// A discovery failure falls back to the built-in default category
	// set; a category fetch failure leaves that category empty.
	ErrDiscoveryFailed     = fmt.Errorf("portfolio discovery failed")
	ErrCategoryFetchFailed = fmt.Errorf("category artwork fetch failed")
	ErrListingParse        = fmt.Errorf("listing document parse failed")
	ErrManifestInvalid     = fmt.Errorf("manifest invalid")

	// Navigation and rendering errors
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrImageLoadFailed  = fmt.Errorf("image load failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
