package points

type RolloverResult struct {
	Month            string            `json:"month"`
	EmployeesUpdated int               `json:"employeesUpdated"`
	EmployeesSkipped int               `json:"employeesSkipped"`
	Failures         []RolloverFailure `json:"failures,omitempty"`
}

type RolloverFailure struct {
	EmployeeID string `json:"employeeId"`
	Error      string `json:"error"`
}
