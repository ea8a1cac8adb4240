package catalog

import "fmt"

// NotFoundMessageKey is the localization key the boundary uses to render a
// not-found response; substitution parameters are (name, account, region).
const NotFoundMessageKey = "serverGroup.not.found"

// NotFoundError is returned when an exact lookup matches zero providers.
type NotFoundError struct {
	Name    string
	Account string
	Region  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("server group %s not found in account %s region %s",
		e.Name, e.Account, e.Region)
}

// MessageKey returns the message template key for the boundary.
func (e *NotFoundError) MessageKey() string {
	return NotFoundMessageKey
}

// MessageArgs returns the template substitution parameters.
func (e *NotFoundError) MessageArgs() []string {
	return []string{e.Name, e.Account, e.Region}
}
