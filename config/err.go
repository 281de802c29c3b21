package config

import (
	"errors"

	"github.com/ezrec/tern/translate"
)

var f = translate.From

var (
	ErrValueNotFound = errors.New(f("config value not found"))
)
