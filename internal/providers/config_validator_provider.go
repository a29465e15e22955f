package providers

import (
	"fmt"
	"gemscout/internal/structures"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	if c.conf.Store.Driver == "postgres" && c.conf.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for the postgres driver")
	}
	return nil
}
