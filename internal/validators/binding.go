package validators

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
)

// HHMM accepts "HH:MM" clock values on the 30-minute grid, including "24:00".
func HHMM(fl validator.FieldLevel) bool {
	minutes, err := schedule.ParseClock(fl.Field().String())
	if err != nil {
		return false
	}
	return minutes%int(schedule.Granularity.Minutes()) == 0
}

// Register installs the custom rules on gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not validator/v10")
	}
	if err := v.RegisterValidation("hhmm", HHMM); err != nil {
		return err
	}
	return validate.RegisterValidation("hhmm", HHMM)
}
