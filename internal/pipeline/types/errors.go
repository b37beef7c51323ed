package types

import "errors"

// Fatal for the platform being built; sibling platforms are unaffected.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrDownload            = errors.New("runtime download failed")
	ErrExtraction          = errors.New("runtime extraction failed")
	ErrConfigWrite         = errors.New("failed to write SEA configuration")
	ErrBlobGeneration      = errors.New("SEA blob generation failed")
	ErrExecutableAssembly  = errors.New("executable assembly failed")
	ErrInjection           = errors.New("blob injection failed")
	ErrVerification        = errors.New("executable verification failed")
)

// ErrInvalidOptions rejects a build session before any platform runs.
var ErrInvalidOptions = errors.New("invalid build options")
