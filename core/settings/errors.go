// core/settings/errors.go
package settings

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings matches every error returned by Spec.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// ConfigError is one configuration problem, located by its settings field.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidSettings }

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
