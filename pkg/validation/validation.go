package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"course-timetable/backend/internal/model"
)

// 自定义校验标签
const (
	TagWeekday   = "weekday"
	TagClock     = "clock"
	TagTrack     = "track"
	TagLabChoice = "labchoice"
)

// Register 向 gin 默认校验引擎注册自定义标签，并使用 json/form 标签名作为错误字段名。
// 重复调用是安全的（validator 以最后一次注册为准）。
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

// RegisterOn 在指定校验器上注册自定义标签
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	rules := map[string]validator.Func{
		TagWeekday: func(fl validator.FieldLevel) bool {
			return model.Weekday(fl.Field().String()).Valid()
		},
		TagClock: func(fl validator.FieldLevel) bool {
			_, err := model.ParseClockTime(fl.Field().String())
			return err == nil
		},
		TagTrack: func(fl validator.FieldLevel) bool {
			return model.Track(fl.Field().String()).Valid()
		},
		TagLabChoice: func(fl validator.FieldLevel) bool {
			return model.LabChoice(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// Describe 将校验错误转为可读文本，如 "day: must be a weekday (Monday-Saturday)"
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+describeTag(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case TagWeekday:
		return "must be a weekday (Monday-Saturday)"
	case TagClock:
		return "must be a time in HH:MM format"
	case "uuid":
		return "must be a valid UUID"
	case TagTrack:
		return "must be one of AI-ML, Web"
	case TagLabChoice:
		return "must be one of 1, 2, 3, 4"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "failed on " + fe.Tag()
	}
}
