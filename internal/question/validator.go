package question

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const answerIndexRangeTag = "answer_index_range"

// Validator checks question records and reports problems as English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(validateAnswerIndex, Question{})
	if err := validate.RegisterTranslation(answerIndexRangeTag, trans, func(ut ut.Translator) error {
		return ut.Add(answerIndexRangeTag, "{0} must point at one of the choices", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(answerIndexRangeTag, fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register %s translation: %w", answerIndexRangeTag, err)
	}

	return &Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

func validateAnswerIndex(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if len(q.Choices) == 0 || q.AnswerIndex < len(q.Choices) {
		return
	}
	sl.ReportError(q.AnswerIndex, "answer_index", "AnswerIndex", answerIndexRangeTag, "")
}

// Validate returns one message per violated rule, or nil when the question is well formed.
func (v *Validator) Validate(q Question) []string {
	err := v.validate.Struct(q)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Translate(v.translator))
	}
	return messages
}
