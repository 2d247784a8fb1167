package domain

type EmployeeStatus string

const (
	EmployeeOnDuty      EmployeeStatus = "on_duty"
	EmployeeOnLeave     EmployeeStatus = "on_leave"
	EmployeeRemote      EmployeeStatus = "remote"
	EmployeeOutOfOffice EmployeeStatus = "out_of_office"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeOnDuty, EmployeeOnLeave, EmployeeRemote, EmployeeOutOfOffice:
		return true
	}
	return false
}

// Employee is a directory entry. Leave dates are plain YYYY-MM-DD strings.
type Employee struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	Department       string
	Position         string
	Status           EmployeeStatus
	AvatarURL        string
	LeaveStart       string
	LeaveEnd         string
	AlternateContact string
}
