// Package services runs each collaboration action: load the entities, ask
// the rule engine, write, then dispatch the resulting notifications.
package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/rules"
)

type Services struct {
	Users         *UserService
	Projects      *ProjectService
	Tasks         *TaskService
	Discussions   *DiscussionService
	Notifications *NotificationService
}

func New(store Store, dispatcher *Dispatcher, log zerolog.Logger) *Services {
	b := base{
		store:    store,
		validate: newValidator(),
		log:      log,
	}

	return &Services{
		Users:         &UserService{base: b},
		Projects:      &ProjectService{base: b},
		Tasks:         &TaskService{base: b, dispatcher: dispatcher},
		Discussions:   &DiscussionService{base: b, dispatcher: dispatcher},
		Notifications: &NotificationService{base: b},
	}
}

type base struct {
	store    Store
	validate *validator.Validate
	log      zerolog.Logger
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check validates input and turns the first failure into a validation
// refusal the caller can show as is.
func (b *base) check(input any) error {
	err := b.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return rules.Invalid(describe(fieldErrs[0]))
	}
	return rules.Invalid(err.Error())
}

func describe(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "containsany":
		return field + " must contain at least one number"
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// checkURL validates an optional webhook URL. Empty clears it.
func (b *base) checkURL(field, value string) error {
	if err := b.validate.Var(value, "omitempty,url"); err != nil {
		return rules.Invalid(field + " must be a valid URL")
	}
	return nil
}

// subject loads the project and the actor's membership row in it. A missing
// project leaves Subject.Project nil for the rule engine to refuse.
func (b *base) subject(ctx context.Context, actorID, projectID uint) (rules.Subject, error) {
	project, err := b.store.FindProject(ctx, projectID)
	if err != nil {
		return rules.Subject{}, fmt.Errorf("find project: %w", err)
	}
	if project == nil {
		return rules.Subject{}, nil
	}

	subject := rules.Subject{Project: project}
	if rules.IsCreator(actorID, project) {
		return subject, nil
	}

	membership, err := b.store.FindTeamMember(ctx, actorID, projectID)
	if err != nil {
		return rules.Subject{}, fmt.Errorf("find membership: %w", err)
	}
	subject.Membership = membership

	return subject, nil
}

// authorize loads the subject for projectID and asks the rule engine.
func (b *base) authorize(ctx context.Context, action rules.Action, actorID, projectID uint) (rules.Subject, error) {
	subject, err := b.subject(ctx, actorID, projectID)
	if err != nil {
		return rules.Subject{}, err
	}
	if err := rules.Authorize(action, actorID, subject); err != nil {
		return rules.Subject{}, err
	}
	return subject, nil
}
