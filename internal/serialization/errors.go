package serialization

import "errors"

// Common errors.
var (
	ErrUnsupportedLayer = errors.New("unsupported layer type: only dense layers can be serialized")
	ErrUnknownLayerType = errors.New("unknown layer type in serialized network")
	ErrMissingParameter = errors.New("serialized layer is missing a parameter")
	ErrEmptyNetwork     = errors.New("serialized network has no layers")
)
