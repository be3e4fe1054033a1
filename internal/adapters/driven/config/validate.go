package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("datastore_uri", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		return err == nil && u.Scheme != ""
	})
	return v
}

// Validate checks the common settings and the credentials of platform.
// Platforms without required credentials only check the common settings.
func (s *Settings) Validate(platform domain.Platform) error {
	var missing []string

	collect := func(v any) error {
		err := validate.Struct(v)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				missing = append(missing, describe(fe))
			}
			return nil
		}
		return err
	}

	if err := collect(s.Datastore); err != nil {
		return err
	}
	if err := validate.Var(s.DataDir, "required"); err != nil {
		missing = append(missing, "INSIGHT_DATA_DIR is required")
	}
	if err := validate.Var(s.HTTPTimeout, "gt=0"); err != nil {
		missing = append(missing, "INSIGHT_HTTP_TIMEOUT must be positive")
	}

	switch platform {
	case domain.PlatformReddit:
		if err := collect(s.Reddit); err != nil {
			return err
		}
	case domain.PlatformYouTube:
		if err := collect(s.YouTube); err != nil {
			return err
		}
	case domain.PlatformTwitter:
		if err := collect(s.Twitter); err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(missing, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datastore_uri":
		return fmt.Sprintf("%s %q is not a URI", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
