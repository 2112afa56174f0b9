package handler

const (
	// APIPath is the root path of the versioned JSON API.
	APIPath = "/api/v1"

	// ErrNilDepsFatalLogMsg is used if router or a dependency pointer is nil.
	ErrNilDepsFatalLogMsg = "router, cfg, guard or store is nil"
)
