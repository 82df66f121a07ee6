package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"

	// CodeDataFormat indicates malformed game data or save data
	CodeDataFormat Code = "data_format"

	// CodeInvalidClass indicates an unknown character class
	CodeInvalidClass Code = "invalid_class"

	// CodeCharacterDead indicates an action attempted by a dead character
	CodeCharacterDead Code = "character_dead"

	// CodeNegativeGold indicates a gold balance would drop below zero
	CodeNegativeGold Code = "negative_gold"

	// CodeInventoryFull indicates the inventory is at capacity
	CodeInventoryFull Code = "inventory_full"

	// CodeItemNotFound indicates an item is not in the inventory
	CodeItemNotFound Code = "item_not_found"

	// CodeInvalidItemType indicates an item cannot be used that way
	CodeInvalidItemType Code = "invalid_item_type"

	// CodeInsufficientResources indicates not enough gold for a purchase
	CodeInsufficientResources Code = "insufficient_resources"

	// CodeInsufficientLevel indicates the character level is too low
	CodeInsufficientLevel Code = "insufficient_level"

	// CodeQuestNotFound indicates an unknown quest identifier
	CodeQuestNotFound Code = "quest_not_found"

	// CodeQuestNotActive indicates the quest is not in the active list
	CodeQuestNotActive Code = "quest_not_active"

	// CodeQuestRequirements indicates quest prerequisites are not met
	CodeQuestRequirements Code = "quest_requirements_not_met"

	// CodeQuestCompleted indicates the quest was already completed
	CodeQuestCompleted Code = "quest_already_completed"

	// CodeInvalidTarget indicates an unknown enemy or ability target
	CodeInvalidTarget Code = "invalid_target"

	// CodeCombatNotActive indicates a combat action outside an active battle
	CodeCombatNotActive Code = "combat_not_active"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return &Error{
			Code:    qcErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(qcErr.Meta),
		}
	}

	// Otherwise, create unknown error
	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// DataFormat creates a data format error
func DataFormat(message string) *Error {
	return New(CodeDataFormat, message)
}

// DataFormatf creates a formatted data format error
func DataFormatf(format string, args ...any) *Error {
	return Newf(CodeDataFormat, format, args...)
}

// CharacterDead creates a character dead error
func CharacterDead(message string) *Error {
	return New(CodeCharacterDead, message)
}

// CharacterDeadf creates a formatted character dead error
func CharacterDeadf(format string, args ...any) *Error {
	return Newf(CodeCharacterDead, format, args...)
}

// InventoryFull creates an inventory full error
func InventoryFull(message string) *Error {
	return New(CodeInventoryFull, message)
}

// ItemNotFoundf creates a formatted item not found error
func ItemNotFoundf(format string, args ...any) *Error {
	return Newf(CodeItemNotFound, format, args...)
}

// InvalidItemTypef creates a formatted invalid item type error
func InvalidItemTypef(format string, args ...any) *Error {
	return Newf(CodeInvalidItemType, format, args...)
}

// InsufficientResourcesf creates a formatted insufficient resources error
func InsufficientResourcesf(format string, args ...any) *Error {
	return Newf(CodeInsufficientResources, format, args...)
}

// QuestNotFoundf creates a formatted quest not found error
func QuestNotFoundf(format string, args ...any) *Error {
	return Newf(CodeQuestNotFound, format, args...)
}

// QuestNotActivef creates a formatted quest not active error
func QuestNotActivef(format string, args ...any) *Error {
	return Newf(CodeQuestNotActive, format, args...)
}

// InvalidTargetf creates a formatted invalid target error
func InvalidTargetf(format string, args ...any) *Error {
	return Newf(CodeInvalidTarget, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsCharacterDead checks if the error is a character dead error
func IsCharacterDead(err error) bool {
	return Is(err, CodeCharacterDead)
}

// IsInventoryFull checks if the error is an inventory full error
func IsInventoryFull(err error) bool {
	return Is(err, CodeInventoryFull)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
