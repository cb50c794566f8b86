package domain

import (
	"errors"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

type Transaction struct {
	ID        string
	UserID    string
	Title     string
	Amount    float64
	Category  string
	Type      EntryType
	CreatedAt time.Time
}

type Category struct {
	ID     string
	UserID string
	Name   string
	Type   EntryType
}
