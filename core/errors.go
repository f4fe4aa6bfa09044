package core

import "errors"

var (
	ErrInvalidConfig = errors.New("dynsite: invalid config")
	ErrTemplate      = errors.New("dynsite: template error")
)

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsTemplateError(err error) bool {
	return errors.Is(err, ErrTemplate)
}
