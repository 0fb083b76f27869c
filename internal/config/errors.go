package config

// Error reports a missing or invalid project setting. Validation errors are
// raised as soon as the offending setting is read and are always fatal.
type Error struct {
	Setting string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func settingError(setting, message string) *Error {
	return &Error{Setting: setting, Message: message}
}

func mustNotBeEmpty(setting string) *Error {
	return settingError(setting, setting+" must not be empty.")
}
