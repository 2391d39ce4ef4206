package validate

import (
	"regexp"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

// nameRe accepts letters (including Latin-1 accented letters) and spaces.
var nameRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)

// Job returns the validation profile for job records.
func Job() *Validator {
	return New().
		Field("title",
			Required("title"),
			MinLength("title", 3),
			MaxLength("title", 100)).
		Field("description",
			Required("description"),
			MinLength("description", 10),
			MaxLength("description", 500)).
		Field("date",
			Required("date"),
			Date("date")).
		Field("status",
			OneOf("status", types.Statuses...))
}

// Worker returns the validation profile for worker records. Phone and email
// are optional but must be well-formed when given.
func Worker() *Validator {
	return New().
		Field("name",
			Required("name"),
			MinLength("name", 2),
			MaxLength("name", 50),
			Pattern(nameRe, "name must contain only letters and spaces")).
		Field("specialty",
			Required("specialty"),
			MinLength("specialty", 3),
			MaxLength("specialty", 50)).
		Field("phone",
			Phone("phone")).
		Field("email",
			Email("email"))
}

// JobValues flattens a job into the map form the validator consumes.
func JobValues(j types.Job) map[string]string {
	return map[string]string{
		"title":       j.Title,
		"description": j.Description,
		"date":        j.Date,
		"status":      j.Status,
	}
}

// WorkerValues flattens a worker into the map form the validator consumes.
func WorkerValues(w types.Worker) map[string]string {
	return map[string]string{
		"name":      w.Name,
		"specialty": w.Specialty,
		"phone":     w.Phone,
		"email":     w.Email,
	}
}
