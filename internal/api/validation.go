package api

import (
	"coachvision/backend/internal/domain"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules used by the request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("weekday", validateWeekday)
		}
	})
}

// validateWeekday accepts any case of the seven weekday names.
func validateWeekday(fl validator.FieldLevel) bool {
	_, err := domain.ParseWeekday(fl.Field().String())
	return err == nil
}
