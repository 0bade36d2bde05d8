package address

import "errors"

var ErrMissingHost = errors.New("address has no host")
var ErrInvalidPort = errors.New("address has an invalid port")
