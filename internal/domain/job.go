package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Job представляет вакансию, соответствует таблице jobs в бд.
// Ровно одна форма оплаты: FixedSalary либо пара SalaryFrom/SalaryTo.
type Job struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Country     string    `json:"country" db:"country"`
	City        string    `json:"city" db:"city"`
	Location    string    `json:"location" db:"location"`
	FixedSalary *int64    `json:"fixedSalary,omitempty" db:"fixed_salary"`
	SalaryFrom  *int64    `json:"salaryFrom,omitempty" db:"salary_from"`
	SalaryTo    *int64    `json:"salaryTo,omitempty" db:"salary_to"`
	Expired     bool      `json:"expired" db:"expired"`
	PostedBy    uuid.UUID `json:"postedBy" db:"posted_by"`
	JobPostedOn time.Time `json:"jobPostedOn" db:"job_posted_on"`
}

// Сообщения нарушений инварианта оплаты.
const (
	MsgMissingCompensation     = "missing compensation"
	MsgConflictingCompensation = "conflicting compensation"
	MsgIncompleteSalaryRange   = "incomplete salary range"
)

// salaryPresent: ноль считается отсутствующим значением, как и nil.
func salaryPresent(v *int64) bool {
	return v != nil && *v != 0
}

// ValidateCompensation проверяет взаимоисключающие поля оплаты.
// Правила применяются по порядку; первое сработавшее определяет результат.
func ValidateCompensation(fixed, from, to *int64) error {
	hasFixed := salaryPresent(fixed)
	hasFrom := salaryPresent(from)
	hasTo := salaryPresent(to)

	switch {
	case !hasFixed && !hasFrom && !hasTo:
		return compensationError(MsgMissingCompensation)
	case hasFixed && (hasFrom || hasTo):
		return compensationError(MsgConflictingCompensation)
	case !hasFixed && hasFrom != hasTo:
		return compensationError(MsgIncompleteSalaryRange)
	}
	return nil
}

// NormalizeCompensation сбрасывает нулевые значения оплаты в nil,
// чтобы хранилище видело ту же картину, что и ValidateCompensation.
func (j *Job) NormalizeCompensation() {
	for _, p := range []**int64{&j.FixedSalary, &j.SalaryFrom, &j.SalaryTo} {
		if !salaryPresent(*p) {
			*p = nil
		}
	}
}

func compensationError(reason string) *Error {
	return &Error{
		Kind:    KindValidationFailed,
		Message: reason,
		Fields:  []FieldError{{Field: "salary", Message: reason}},
	}
}

func checkLength(field, value string, minLen, maxLen int, fields []FieldError) []FieldError {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return append(fields, FieldError{Field: field, Message: field + " is required"})
	case minLen > 0 && n < minLen:
		return append(fields, FieldError{Field: field, Message: fmt.Sprintf("%s must contain at least %d characters!", field, minLen)})
	case maxLen > 0 && n > maxLen:
		return append(fields, FieldError{Field: field, Message: fmt.Sprintf("%s cannot exceed %d characters!", field, maxLen)})
	}
	return fields
}

// Validate проверяет запись вакансии целиком: длины полей и инвариант оплаты.
// Все нарушения возвращаются по отдельности.
func (j *Job) Validate() error {
	var fields []FieldError
	if err := ValidateCompensation(j.FixedSalary, j.SalaryFrom, j.SalaryTo); err != nil {
		fields = append(fields, err.(*Error).Fields...)
	}
	fields = checkLength("title", j.Title, 3, 50, fields)
	fields = checkLength("description", j.Description, 3, 350, fields)
	fields = checkLength("category", j.Category, 0, 100, fields)
	fields = checkLength("country", j.Country, 0, 0, fields)
	fields = checkLength("city", j.City, 0, 0, fields)
	fields = checkLength("location", j.Location, 25, 0, fields)

	if len(fields) == 0 {
		return nil
	}
	return NewFieldValidation(fields)
}

// OptionalInt64 различает отсутствующее поле JSON и явный null.
type OptionalInt64 struct {
	Set   bool
	Value *int64
}

func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// JobPatch — частичное обновление вакансии. Nil-поля не меняются.
type JobPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Category    *string       `json:"category"`
	Country     *string       `json:"country"`
	City        *string       `json:"city"`
	Location    *string       `json:"location"`
	FixedSalary OptionalInt64 `json:"fixedSalary"`
	SalaryFrom  OptionalInt64 `json:"salaryFrom"`
	SalaryTo    OptionalInt64 `json:"salaryTo"`
	Expired     *bool         `json:"expired"`
}

// Apply возвращает копию вакансии с примененными изменениями.
// ID, PostedBy и JobPostedOn не изменяются.
func (p JobPatch) Apply(j Job) Job {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Category != nil {
		j.Category = *p.Category
	}
	if p.Country != nil {
		j.Country = *p.Country
	}
	if p.City != nil {
		j.City = *p.City
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.FixedSalary.Set {
		j.FixedSalary = p.FixedSalary.Value
	}
	if p.SalaryFrom.Set {
		j.SalaryFrom = p.SalaryFrom.Value
	}
	if p.SalaryTo.Set {
		j.SalaryTo = p.SalaryTo.Value
	}
	if p.Expired != nil {
		j.Expired = *p.Expired
	}
	return j
}
