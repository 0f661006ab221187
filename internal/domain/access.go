package domain

// Operation — действие, доступ к которому проверяет Authorize.
type Operation string

const (
	OpCreateJob                Operation = "job.create"
	OpUpdateJob                Operation = "job.update"
	OpDeleteJob                Operation = "job.delete"
	OpListOwnJobs              Operation = "job.list_own"
	OpSubmitApplication        Operation = "application.submit"
	OpListOwnApplications      Operation = "application.list_own"
	OpDeleteOwnApplication     Operation = "application.delete_own"
	OpListReceivedApplications Operation = "application.list_received"
)

// deniedRole — для каждой операции роль, которой она запрещена.
// Операции, которых нет в таблице, доступны обеим ролям.
var deniedRole = map[Operation]Role{
	OpCreateJob:                RoleJobSeeker,
	OpUpdateJob:                RoleJobSeeker,
	OpDeleteJob:                RoleJobSeeker,
	OpListOwnJobs:              RoleJobSeeker,
	OpListReceivedApplications: RoleJobSeeker,

	OpSubmitApplication:    RoleEmployer,
	OpListOwnApplications:  RoleEmployer,
	OpDeleteOwnApplication: RoleEmployer,
}

// Authorize решает, может ли роль выполнить операцию.
// Возвращает nil или ошибку вида KindAuthorizationDenied. Неизвестная роль
// не проходит ни одну проверку.
func Authorize(role Role, op Operation) error {
	if !role.Valid() {
		return &Error{Kind: KindAuthorizationDenied, Message: "Unknown role is not allowed to access this resource!"}
	}
	if denied, ok := deniedRole[op]; ok && denied == role {
		return NewAuthorizationDenied(role)
	}
	return nil
}
