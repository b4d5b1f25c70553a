package jokeapi

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Extract returns the displayable text of the joke: setup and punchline joined by a newline.
// ErrMalformedResponse is returned if either field is missing.
func Extract(j *Joke) (string, error) {
	if j == nil {
		return "", errors.Wrap(ErrMalformedResponse, "no joke in response")
	}
	if err := validate.Struct(j); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return "", errors.Wrapf(ErrMalformedResponse, "missing %s", strings.Join(fields, ", "))
		}
		return "", errors.Wrap(ErrMalformedResponse, err.Error())
	}
	return *j.Setup + "\n" + *j.Punchline, nil
}
