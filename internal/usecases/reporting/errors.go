package reporting

import "errors"

var ErrInvalidPeriod = errors.New("invalid period: month must be between 1 and 12")
