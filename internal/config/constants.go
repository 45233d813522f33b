package config

// Image and container naming constants
const (
	// DefaultImageRepo is the registry repository holding the environment images
	DefaultImageRepo = "redcellsec/environments"

	// DefaultContainerPrefix is prepended to every managed container name
	DefaultContainerPrefix = "redcell-"

	// LocalImageTag is the tag used for locally built images
	LocalImageTag = "local"
)
