package grid

import "errors"

// ErrConfigurationInvalid is the sentinel wrapped by every construction-time
// validation failure in this package: non-covering layers, duplicate
// biome ids or keys, and non-positive world dimensions. Construction fails
// outright on this error; there is no partial/degraded pipeline.
var ErrConfigurationInvalid = errors.New("grid: configuration invalid")
