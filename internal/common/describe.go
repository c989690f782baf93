package common

import "errors"

// Alert titles used by the screens.
const (
	TitleError          = "Error"
	TitleAuthError      = "Authentication Error"
	TitlePermission     = "Permission needed"
	TitleSuccess        = "Success"
	MessageFillRequired = "Please fill in title and content"
	MessageFillLogin    = "Please enter a valid email and password"
	MessageNoUser       = "No user found, please log in again"
	MessageGrantPhotos  = "Please grant permission to access photos"
)

// Describe turns an error into the title and message of a user-visible alert.
// Validation, session and permission failures get fixed wording; everything
// else surfaces the raw error text.
func Describe(err error) (title, message string) {
	switch {
	case err == nil:
		return "", ""
	case errors.Is(err, ErrValidation):
		return TitleError, MessageFillRequired
	case errors.Is(err, ErrNoSession):
		return TitleError, MessageNoUser
	case errors.Is(err, ErrPermissionDenied):
		return TitlePermission, MessageGrantPhotos
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return TitleAuthError, err.Error()
	default:
		return TitleError, err.Error()
	}
}
