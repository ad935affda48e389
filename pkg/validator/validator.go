package validator

import (
	"fmt"
	"sync"

	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TagOutcome validates a ball signal string.
const TagOutcome = "ball_outcome"

var (
	once        sync.Once
	registerErr error
)

// RegisterBindings adds the scoring tags to gin's validator. It is safe to
// call more than once; every call reports the first registration's result.
func RegisterBindings() error {
	once.Do(func() {
		registerErr = register(binding.Validator.Engine())
	})
	return registerErr
}

func register(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("register %s: binding engine is %T, not *validator.Validate", TagOutcome, engine)
	}
	if err := v.RegisterValidation(TagOutcome, validOutcome); err != nil {
		return fmt.Errorf("register %s: %w", TagOutcome, err)
	}
	return nil
}

func validOutcome(fl validator.FieldLevel) bool {
	return scoring.Outcome(fl.Field().String()).Valid()
}
