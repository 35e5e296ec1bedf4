package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrMissingDatabase        = errors.New("mongo database name is empty")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
)
