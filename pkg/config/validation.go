package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags and the cross-field rules tags cannot
// express.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (%s)", fe.Namespace(), fe.Tag(), fieldValue(fe)))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}

	if cfg.Cloud.Token != "" && cfg.Cloud.Endpoint == "" {
		return fmt.Errorf("cloud.token requires cloud.endpoint")
	}
	return nil
}

func fieldValue(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s=%s, got %v", fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("got %v", fe.Value())
}
