package employee

// Employee は社員エンティティです。識別子はストアが採番します。
type Employee struct {
	ID             int64
	Name           string
	DepartmentCode string
	Salary         float64
}
