package errs

// 1xxx: general request handling errors.
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrFormParseFailed indicates failure to parse URL-encoded or multipart form data.
	ErrFormParseFailed = 1002

	// ErrRequestEntityTooLarge indicates the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1003

	// ErrRateLimitExceeded indicates the per-IP request rate was exceeded.
	ErrRateLimitExceeded = 1004

	// ErrUnsupportedMediaType indicates an unexpected Content-Type header.
	ErrUnsupportedMediaType = 1005

	// ErrInvalidJSONFormat indicates a malformed JSON request body.
	ErrInvalidJSONFormat = 1006
)

// 2xxx: room, topic and message errors.
const (
	// ErrRoomNotFound indicates the referenced room id does not exist.
	ErrRoomNotFound = 2101

	// ErrRoomEditForbidden indicates the actor is not the room's host.
	ErrRoomEditForbidden = 2102

	// ErrRoomDeleteForbidden indicates the actor is not the room's host.
	ErrRoomDeleteForbidden = 2103

	// ErrRoomNameEmpty indicates a room form was submitted without a name.
	ErrRoomNameEmpty = 2104

	// ErrTopicNameEmpty indicates a room form was submitted without a topic.
	ErrTopicNameEmpty = 2105

	// ErrMessageNotFound indicates the referenced message id does not exist.
	ErrMessageNotFound = 2201

	// ErrMessageEditForbidden indicates the actor is not the message's author.
	ErrMessageEditForbidden = 2202

	// ErrMessageDeleteForbidden indicates the actor is not the message's author.
	ErrMessageDeleteForbidden = 2203

	// ErrMessageBodyEmpty indicates a message was submitted without a body.
	ErrMessageBodyEmpty = 2204
)

// 3xxx: user and session errors.
const (
	// ErrUnauthorized indicates the request carries no valid session.
	ErrUnauthorized = 3001

	// ErrUserDoesNotExist indicates a login attempt for an unregistered email.
	ErrUserDoesNotExist = 3002

	// ErrInvalidCredentials indicates a password mismatch at login.
	ErrInvalidCredentials = 3003

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = 3004

	// ErrInvalidEmail indicates the submitted email failed shape validation.
	ErrInvalidEmail = 3005

	// ErrInvalidName indicates the submitted display name failed shape validation.
	ErrInvalidName = 3006

	// ErrInvalidPassword indicates the submitted password failed length validation.
	ErrInvalidPassword = 3007

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = 3008

	// ErrUserNotFound indicates the referenced user id does not exist.
	ErrUserNotFound = 3009
)

// 4xxx: avatar storage errors.
const (
	// ErrStorageUnavailable indicates avatar storage is not configured.
	ErrStorageUnavailable = 4001

	// ErrFileSizeTooLarge indicates the avatar exceeds the size limit.
	ErrFileSizeTooLarge = 4002

	// ErrFileTypeInvalid indicates the avatar MIME type is not allowed.
	ErrFileTypeInvalid = 4003
)

// 5xxx: internal system errors.
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000
)
