package domain

import (
	"github.com/google/uuid"
)

// PartyRef — ссылка на участника отклика вместе с его ролью.
// Роль дублируется, чтобы выборки по стороне отклика обходились без join с users.
type PartyRef struct {
	User uuid.UUID `json:"user" db:"user"`
	Role Role      `json:"role" db:"role"`
}

// Resume — метаданные загруженного файла резюме.
type Resume struct {
	StorageID string `json:"public_id" db:"storage_id"`
	URL       string `json:"url" db:"url"`
}

// Application представляет отклик соискателя на вакансию,
// соответствует таблице applications в бд. После создания не изменяется.
type Application struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	CoverLetter string    `json:"coverLetter" db:"cover_letter"`
	Phone       string    `json:"phone" db:"phone"`
	Address     string    `json:"address" db:"address"`
	Resume      Resume    `json:"resume" db:"resume"`
	ApplicantID PartyRef  `json:"applicantID" db:"applicant"`
	EmployerID  PartyRef  `json:"employerID" db:"employer"`
}

// NewCrossReference строит пару ссылок отклика: соискатель — автор запроса,
// работодатель — автор вакансии на момент подачи.
func NewCrossReference(applicant uuid.UUID, job *Job) (PartyRef, PartyRef) {
	return PartyRef{User: applicant, Role: RoleJobSeeker},
		PartyRef{User: job.PostedBy, Role: RoleEmployer}
}

// ApplicationSide — сторона отклика, по которой фильтруется выборка.
type ApplicationSide string

const (
	SideApplicant ApplicationSide = "applicant"
	SideEmployer  ApplicationSide = "employer"
)

// ApplicationScope ограничивает выборку откликов записями одного участника.
type ApplicationScope struct {
	Side   ApplicationSide
	UserID uuid.UUID
}

// ApplicationScopeFor возвращает область видимости откликов для пользователя:
// соискатель видит свои отклики, работодатель — адресованные ему.
func ApplicationScopeFor(p Principal) (ApplicationScope, error) {
	switch p.Role {
	case RoleJobSeeker:
		return ApplicationScope{Side: SideApplicant, UserID: p.ID}, nil
	case RoleEmployer:
		return ApplicationScope{Side: SideEmployer, UserID: p.ID}, nil
	}
	return ApplicationScope{}, Authorize(p.Role, OpListOwnApplications)
}

// Includes сообщает, попадает ли отклик в область видимости.
func (s ApplicationScope) Includes(a *Application) bool {
	switch s.Side {
	case SideApplicant:
		return a.ApplicantID.User == s.UserID
	case SideEmployer:
		return a.EmployerID.User == s.UserID
	}
	return false
}

// OwnsJob сообщает, является ли пользователь автором вакансии.
func OwnsJob(p Principal, j *Job) bool {
	return j.PostedBy == p.ID
}

// FilterOwnedJobs оставляет только вакансии, опубликованные пользователем.
func FilterOwnedJobs(p Principal, jobs []Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if OwnsJob(p, &j) {
			out = append(out, j)
		}
	}
	return out
}

// FilterApplications оставляет только отклики из области видимости.
func FilterApplications(s ApplicationScope, apps []Application) []Application {
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if s.Includes(&a) {
			out = append(out, a)
		}
	}
	return out
}
