package errs

import "net/http"

// errorMap resolves every application error code into its CustomError
// template. A zero Status means the page is re-rendered with the error
// inline (HTTP 200), matching form-validation and login-flash behavior.
var errorMap = map[int]CustomError{
	// 1xxx: general request handling errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process submitted data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},

	// 2xxx: room, topic and message errors
	ErrRoomNotFound:           {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrRoomEditForbidden:      {Code: ErrRoomEditForbidden, Message: "You cannot edit a room you don't own.", Status: http.StatusForbidden},
	ErrRoomDeleteForbidden:    {Code: ErrRoomDeleteForbidden, Message: "You cannot delete a room you don't own.", Status: http.StatusForbidden},
	ErrRoomNameEmpty:          {Code: ErrRoomNameEmpty, Message: "Room name is required."},
	ErrTopicNameEmpty:         {Code: ErrTopicNameEmpty, Message: "Topic is required."},
	ErrMessageNotFound:        {Code: ErrMessageNotFound, Message: "Message not found.", Status: http.StatusNotFound},
	ErrMessageEditForbidden:   {Code: ErrMessageEditForbidden, Message: "You cannot edit a message you don't own.", Status: http.StatusForbidden},
	ErrMessageDeleteForbidden: {Code: ErrMessageDeleteForbidden, Message: "You cannot delete a message you don't own.", Status: http.StatusForbidden},
	ErrMessageBodyEmpty:       {Code: ErrMessageBodyEmpty, Message: "Message body is required."},

	// 3xxx: user and session errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrUserDoesNotExist:   {Code: ErrUserDoesNotExist, Message: "User does not exist."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Email or password does not exist."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "An account with this email already exists."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Please provide a valid email address."},
	ErrInvalidName:        {Code: ErrInvalidName, Message: "Name must be 3-30 characters: letters, digits or underscores."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between 6 and 50 characters."},
	ErrPasswordMismatch:   {Code: ErrPasswordMismatch, Message: "Passwords do not match."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "User not found.", Status: http.StatusNotFound},

	// 4xxx: avatar storage errors
	ErrStorageUnavailable: {Code: ErrStorageUnavailable, Message: "Avatar storage is not configured.", Status: http.StatusServiceUnavailable},
	ErrFileSizeTooLarge:   {Code: ErrFileSizeTooLarge, Message: "File is too large.", Status: http.StatusBadRequest},
	ErrFileTypeInvalid:    {Code: ErrFileTypeInvalid, Message: "File type is not allowed.", Status: http.StatusBadRequest},

	// 5xxx: internal system errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
