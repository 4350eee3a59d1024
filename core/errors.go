package core

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorInvalidID struct {
}

func (e ErrorInvalidID) Error() string {
	return "Invalid ID"
}

func NewErrorInvalidID() ErrorInvalidID {
	return ErrorInvalidID{}
}

// ErrorInvalidArgument is a validation failure whose message is safe to show to the client
type ErrorInvalidArgument struct {
	Message string
}

func (e ErrorInvalidArgument) Error() string {
	return e.Message
}

func NewErrorInvalidArgument(message string) ErrorInvalidArgument {
	return ErrorInvalidArgument{Message: message}
}
