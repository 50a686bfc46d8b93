package assessment

import (
	"errors"
	"fmt"
)

// Two failure classes cross the package boundary: bad caller input and
// missing targets. Specific conditions wrap one of them so callers can
// branch on errors.Is against either level.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrUnknownDimension        = fmt.Errorf("%w: unknown dimension", ErrInvalidArgument)
	ErrScoreOutOfRange         = fmt.Errorf("%w: score out of range", ErrInvalidArgument)
	ErrInvalidStatus           = fmt.Errorf("%w: invalid assessment status", ErrInvalidArgument)
	ErrInvalidRelatedStatus    = fmt.Errorf("%w: invalid related assessment status", ErrInvalidArgument)
	ErrInvalidMitigationStatus = fmt.Errorf("%w: invalid mitigation status", ErrInvalidArgument)
	ErrMalformedDate           = fmt.Errorf("%w: malformed date", ErrInvalidArgument)

	ErrMitigationItemNotFound = fmt.Errorf("%w: mitigation item", ErrNotFound)
)
