package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates no snapshot record exists for the requested date.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates that a sell transaction cannot be completed
	// because the position does not hold enough quantity.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidPeriod indicates that an aggregation period parameter is not one of
	// daily, weekly, monthly, yearly.
	ErrInvalidPeriod = errors.New("invalid aggregation period")

	// ErrInvalidStatus indicates that a position status is not one of holding, sold, watching.
	ErrInvalidStatus = errors.New("invalid position status")

	// ErrInvalidTransactionType indicates that a transaction type is not buy or sell.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Position operation errors
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrievePosition  = errors.New("failed to retrieve position")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Snapshot operation errors
	ErrFailedToRetrieveSnapshots = errors.New("failed to retrieve snapshots")
	ErrFailedToCreateSnapshot    = errors.New("failed to create snapshot")

	// Analytics operation errors
	ErrFailedToComputeAnalytics = errors.New("failed to compute analytics")
)
