package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dept-portal/timetable"
)

// RegisterValidators installs the portal's custom binding rules: "hhmm" for
// strict zero-padded 24-hour times and "weekday" for the seven day names.
// Malformed times and unknown weekdays are rejected here, at the input
// boundary, before they can reach the timetable resolver.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := timetable.ParseMinutes(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return timetable.DayIndex(fl.Field().String()) >= 0
	})
}
