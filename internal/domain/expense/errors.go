package expense

import "errors"

var (
	ErrExpenseNotFound         = errors.New("expense claim not found")
	ErrExpenseAlreadyProcessed = errors.New("expense claim already processed")
)
