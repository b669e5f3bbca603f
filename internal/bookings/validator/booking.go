package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	apperrors "carwash/pkg/errors"
	"carwash/pkg/logger"
	"carwash/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// FieldErrors converts to the API error representation.
func (v ValidationErrors) FieldErrors() []apperrors.FieldError {
	out := make([]apperrors.FieldError, 0, len(v))
	for _, e := range v {
		out = append(out, apperrors.FieldError{Field: e.Field, Message: e.Message})
	}
	return out
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(model.Date); ok {
			return d.Time
		}
		return nil
	}, model.Date{})

	custom := map[string]validator.Func{
		"service_type":   oneOfCatalog(model.IsServiceType),
		"car_type":       oneOfCatalog(model.IsCarType),
		"time_slot":      oneOfCatalog(model.IsTimeSlot),
		"booking_status": oneOfCatalog(model.IsStatus),
		"add_on":         oneOfCatalog(model.IsAddOn),
		"car_year":       validateCarYear,
		"calendar_date":  validateCalendarDate,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register booking validator", "tag", tag, "error", err)
		}
	}

	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func oneOfCatalog(member func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return member(fl.Field().String())
	}
}

// validateCarYear reads the clock on every call so the upper bound moves
// with the calendar.
func validateCarYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= model.MinCarYear && year <= model.MaxCarYear()
}

// validateCalendarDate rejects a date that is present but empty, as when a
// patch sends "date": "".
func validateCalendarDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && !t.IsZero()
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	return v.run(booking)
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	return v.run(update)
}

func (v *BookingValidator) run(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := fieldPath(err.Namespace())
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s cannot be empty", field)
			} else {
				message = fmt.Sprintf("%s must be at least %s", field, err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s cannot exceed %s characters", field, err.Param())
			} else {
				message = fmt.Sprintf("%s must be at most %s", field, err.Param())
			}
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", field)
		case "service_type":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.ServiceTypes, ", "))
		case "car_type":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.CarTypes, ", "))
		case "time_slot":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.TimeSlots, ", "))
		case "booking_status":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.Statuses, ", "))
		case "add_on":
			message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.AddOns, ", "))
		case "calendar_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "car_year":
			message = fmt.Sprintf("%s must be between %d and %d", field, model.MinCarYear, model.MaxCarYear())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}

// fieldPath drops the root struct name from a validator namespace, so
// "Booking.carDetails.year" becomes "carDetails.year".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
