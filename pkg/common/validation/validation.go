package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// IsRequestValid validates v against its `validate` tags.
// Returns (true, "") when valid, otherwise false and a one-line summary.
func IsRequestValid(v any) (bool, string) {
	err := instance().Struct(v)
	if err == nil {
		return true, ""
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (param %q, got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return false, strings.Join(msgs, "; ")
}
