package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("backend_url", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			if strings.TrimSpace(raw) == "" {
				return false
			}

			parsed, err := url.Parse(raw)
			if err != nil {
				return false
			}

			scheme := strings.ToLower(parsed.Scheme)
			return (scheme == "http" || scheme == "https") && parsed.Host != ""
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks the configuration against its declared rules.
func ValidateConfig(cfg *Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("invalid config field %q (rule %q, value %v)",
			strings.ToLower(first.StructField()), first.Tag(), first.Value())
	}

	return fmt.Errorf("config validation failed: %w", err)
}
