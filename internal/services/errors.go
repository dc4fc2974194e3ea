package services

import "errors"

var (
	ErrStudyNotFound = errors.New("study not found")
	ErrDuplicateID   = errors.New("study id already exists")
)
