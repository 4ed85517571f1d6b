// Package core implements the recipient-attachment reconciliation engine:
// key normalization, column mapping, the recipient table, the attachment
// index, the reconciler and the batch policy deriver. It has no HTTP or
// storage dependencies and can be driven by any frontend.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the recoverable failure conditions of the engine.
// Every one of these means "this edit was rejected, prior state is intact";
// none of them should ever terminate the hosting process.
var (
	// ErrNoHeaders is returned when a table source declares zero columns.
	ErrNoHeaders = errors.New("recipient table has no header columns")

	// ErrMissingRecipient is returned when a manual row append has no value
	// in the mapped recipient column.
	ErrMissingRecipient = errors.New("missing recipient value for mapped column")

	// ErrInvalidMapping is returned when a mapping field is set to a column
	// that does not exist in the current header list.
	ErrInvalidMapping = errors.New("mapping column not found in headers")

	// ErrNoTable is returned when a row operation runs before any table has
	// been loaded or initialized.
	ErrNoTable = errors.New("no recipient table loaded")

	// ErrRowIndex is returned when a row delete targets a position outside
	// the table.
	ErrRowIndex = errors.New("row index out of range")

	// ErrSessionNotFound is returned when a workspace session ID is unknown
	// or expired.
	ErrSessionNotFound = errors.New("session not found")
)

// UserMessage provides operator-facing error information with a short code
// for support reference.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorPattern struct {
	err error
	msg UserMessage
}

// errorPatterns maps engine errors to operator messages. Matched with
// errors.Is first, then by substring as a fallback for wrapped collaborator
// errors that lost their sentinel.
var errorPatterns = []errorPattern{
	{
		err: ErrNoHeaders,
		msg: UserMessage{
			Message: "The uploaded table has no header row",
			Action:  "Make sure the first row of your file contains column names",
			Code:    "TBL001",
		},
	},
	{
		err: ErrNoTable,
		msg: UserMessage{
			Message: "No recipient table is loaded",
			Action:  "Upload a recipient file or start a manual table first",
			Code:    "TBL002",
		},
	},
	{
		err: ErrRowIndex,
		msg: UserMessage{
			Message: "That row no longer exists",
			Action:  "Refresh the recipient list and try again",
			Code:    "TBL003",
		},
	},
	{
		err: ErrMissingRecipient,
		msg: UserMessage{
			Message: "The recipient address is empty",
			Action:  "Fill in the recipient column before adding the row",
			Code:    "ROW001",
		},
	},
	{
		err: ErrInvalidMapping,
		msg: UserMessage{
			Message: "The selected column does not exist in this table",
			Action:  "Pick one of the uploaded column headers",
			Code:    "MAP001",
		},
	},
	{
		err: ErrSessionNotFound,
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page to start a new session",
			Code:    "SES001",
		},
	},
}

// defaultMessage is the fallback when no pattern matches. Support staff
// should check the application logs for the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to an operator-facing message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if errors.Is(err, ep.err) {
			return ep.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.err.Error()) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific known condition
// rather than the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
