package maintenance

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrIssueNotFound    = errors.New("issue not found")
	ErrInvalidStatus    = errors.New("invalid issue status")
	ErrInvalidFrequency = errors.New("unsupported frequency")
)
