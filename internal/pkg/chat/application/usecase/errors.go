package usecase

import "errors"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = errors.New("chat use case: persistence error")

// ErrNotFound indicates the target conversation, message, or counterparty does not exist
var ErrNotFound = errors.New("chat use case: not found")
