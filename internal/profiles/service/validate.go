package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/go-playground/validator/v10"
)

// Form field names, shared by the HTML forms and FieldErrors keys.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldAge       = "age"
	FieldBio       = "bio"
)

const (
	msgAgeRequired   = "Age is required"
	msgAgeNotInteger = "Age must be a whole number"
)

// UserInput is a raw form submission, exactly as typed by the user.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Age       string
	Bio       string
}

// InputFromUser pre-fills a form with a stored profile.
func InputFromUser(u domain.User) UserInput {
	return UserInput{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       strconv.Itoa(u.Age),
		Bio:       u.Bio,
	}
}

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// HasErrors reports whether any field failed.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// userRules carries the normalised input through the validator. Age is a
// pointer so that an unparsable value is reported once, by ValidateUser.
type userRules struct {
	FirstName string `form:"first_name" validate:"required,min=2,max=50"`
	LastName  string `form:"last_name" validate:"required,min=2,max=50"`
	Email     string `form:"email" validate:"required,email"`
	Age       *int   `form:"age" validate:"omitnil,gte=13,lte=120"`
	Bio       string `form:"bio" validate:"max=500"`
}

var fieldMessages = map[string]map[string]string{
	FieldFirstName: {
		"required": "First name is required",
		"min":      "First name must be between 2 and 50 characters",
		"max":      "First name must be between 2 and 50 characters",
	},
	FieldLastName: {
		"required": "Last name is required",
		"min":      "Last name must be between 2 and 50 characters",
		"max":      "Last name must be between 2 and 50 characters",
	},
	FieldEmail: {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	FieldAge: {
		"gte": "Age must be between 13 and 120",
		"lte": "Age must be between 13 and 120",
	},
	FieldBio: {
		"max": "Bio must be 500 characters or fewer",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ValidateUser normalises a submission and checks it against the profile
// rules. The returned fields are only meaningful when the FieldErrors are
// empty. Register and update share these rules.
func ValidateUser(in UserInput) (domain.UserFields, FieldErrors) {
	errs := FieldErrors{}

	rules := userRules{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Bio:       strings.TrimSpace(in.Bio),
	}

	if raw := strings.TrimSpace(in.Age); raw == "" {
		errs.Add(FieldAge, msgAgeRequired)
	} else if age, err := strconv.Atoi(raw); err != nil {
		errs.Add(FieldAge, msgAgeNotInteger)
	} else {
		rules.Age = &age
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(rules); errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(fe.Field(), messageFor(fe))
		}
	}

	fields := domain.UserFields{
		FirstName: rules.FirstName,
		LastName:  rules.LastName,
		Email:     rules.Email,
		Bio:       rules.Bio,
	}
	if rules.Age != nil {
		fields.Age = *rules.Age
	}

	return fields, errs
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
		return msg
	}
	return fe.Error()
}
