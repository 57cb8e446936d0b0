package qchat

import "errors"

var (
	ErrInvalidVariant      = errors.New("unknown questionnaire variant")
	ErrInvalidAgeGroup     = errors.New("unknown age group")
	ErrUnknownQuestion     = errors.New("question does not belong to age group")
	ErrInvalidAnswerWeight = errors.New("answer weight is not an option of the question")
	ErrInvalidDataset      = errors.New("invalid questionnaire dataset")
	ErrInvalidChildInfo    = errors.New("child name and age are required")
	ErrInvalidOption       = errors.New("option index out of range")
	ErrInvalidTransition   = errors.New("operation not allowed in current state")
)
