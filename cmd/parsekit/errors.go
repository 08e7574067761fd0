package main

import "errors"

// Sentinel errors for command operations
var (
	ErrEvaluationFailed = errors.New("evaluation failed")
	ErrStreamFailed     = errors.New("stream evaluation failed")
	ErrPathInvalid      = errors.New("path does not match schema")
	ErrEmptyInput       = errors.New("no input")
	ErrDocumentFailed   = errors.New("document check failed")
)
