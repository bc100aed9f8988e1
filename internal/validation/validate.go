package validation

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/match-engine/internal/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// instance returns the shared validator. Struct tag caching makes a single
// instance measurably cheaper than constructing one per call.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateJob checks a NormalizedJob for malformed values. Sparse metadata
// (no skills, no experience range, no level) is valid input; only
// contradictory or out-of-range values are rejected.
func ValidateJob(job *types.NormalizedJob) error {
	if job == nil {
		return NewFieldError("job", "must not be nil")
	}

	if err := instance().Struct(job); err != nil {
		return fromValidator(err)
	}

	var errs []FieldError
	if job.ExperienceMinYears != nil && job.ExperienceMaxYears != nil &&
		*job.ExperienceMaxYears < *job.ExperienceMinYears {
		errs = append(errs, FieldError{
			Field:   "experience_max_years",
			Message: fmt.Sprintf("must be >= experience_min_years (%.1f < %.1f)", *job.ExperienceMaxYears, *job.ExperienceMinYears),
		})
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMax < *job.SalaryMin {
		errs = append(errs, FieldError{
			Field:   "salary_max",
			Message: fmt.Sprintf("must be >= salary_min (%d < %d)", *job.SalaryMax, *job.SalaryMin),
		})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateCandidate checks a CandidateProfile. An empty skill set is valid;
// the scorers fall back to their no-requirement defaults.
func ValidateCandidate(profile *types.CandidateProfile) error {
	if profile == nil {
		return NewFieldError("candidate", "must not be nil")
	}
	if err := instance().Struct(profile); err != nil {
		return fromValidator(err)
	}
	return nil
}

// fromValidator converts validator.ValidationErrors into the engine's
// ValidationError so callers never see the library's error types.
func fromValidator(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewFieldError("input", err.Error())
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed '%s' validation (value: %v)", fe.Tag(), fe.Value()),
		})
	}
	return out
}
