package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/mindwell-backend/internal/domain/survey"
)

// RegisterValidators adds the survey and calendar tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	rules := map[string]validator.Func{
		"activity_id": func(fl validator.FieldLevel) bool {
			return survey.IsActivity(fl.Field().String())
		},
		"social_media_bucket": func(fl validator.FieldLevel) bool {
			return survey.IsSocialMediaBucket(fl.Field().String())
		},
		"isodate": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(survey.DateLayout, fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}
