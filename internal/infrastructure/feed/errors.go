package feed

import "errors"

var ErrFeedClosed = errors.New("feed closed")
