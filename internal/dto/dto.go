package dto

import "github.com/employee-api/internal/domain"

// Ограничения постраничной выдачи
const (
	DefaultPage     = 0
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// EmployeeView - представление сотрудника для транспорта и кэша.
// ID заполняется только в ответах; во входящих запросах на создание он должен отсутствовать.
type EmployeeView struct {
	ID         *int64 `json:"id"`
	Name       string `json:"name" validate:"required,notblank,max=255"`
	Salary     *int   `json:"salary" validate:"required,min=-2147483648,max=2147483647"`
	Department string `json:"department" validate:"required,notblank,max=255"`
}

// ListEmployeesQuery - параметры запроса списка сотрудников
type ListEmployeesQuery struct {
	Page     int `validate:"min=0"`
	PageSize int `validate:"min=1,max=1000"`
}

// EmployeeIDParam - идентификатор сотрудника из пути
type EmployeeIDParam struct {
	ID int64 `validate:"min=0"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FromEmployee строит представление по сохранённой записи
func FromEmployee(emp *domain.Employee) EmployeeView {
	id := emp.ID
	salary := emp.Salary
	return EmployeeView{
		ID:         &id,
		Name:       emp.Name,
		Salary:     &salary,
		Department: emp.Department,
	}
}

// ToEmployee переводит представление в сущность хранилища
func (v EmployeeView) ToEmployee() *domain.Employee {
	emp := &domain.Employee{
		Name:       v.Name,
		Department: v.Department,
	}
	if v.ID != nil {
		emp.ID = *v.ID
	}
	if v.Salary != nil {
		emp.Salary = *v.Salary
	}
	return emp
}

// WithID возвращает копию представления с заданным идентификатором
func (v EmployeeView) WithID(id int64) EmployeeView {
	v.ID = &id
	return v
}
