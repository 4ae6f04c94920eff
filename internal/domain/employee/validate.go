package employee

func validateResourcePatch(patch ResourcePatch) error {
	if patch.Salary != nil && *patch.Salary < 0 {
		return &ValidationError{Field: "salary", Reason: "must be a non-negative number"}
	}
	if patch.OverheadPercent != nil && (*patch.OverheadPercent < 0 || *patch.OverheadPercent > 100) {
		return &ValidationError{Field: "overheadPercent", Reason: "must be between 0 and 100"}
	}
	if patch.MonthlyHours != nil && *patch.MonthlyHours <= 0 {
		return &ValidationError{Field: "monthlyHours", Reason: "must be a positive number"}
	}
	return nil
}
