package dto_test

import (
	"testing"

	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEmployee(t *testing.T) {
	view := dto.FromEmployee(&domain.Employee{ID: 3, Name: "Peter Kwan", Salary: 1000, Department: "Sales"})

	require.NotNil(t, view.ID)
	require.NotNil(t, view.Salary)
	assert.Equal(t, int64(3), *view.ID)
	assert.Equal(t, 1000, *view.Salary)
	assert.Equal(t, "Peter Kwan", view.Name)
	assert.Equal(t, "Sales", view.Department)
}

func TestToEmployee_Draft(t *testing.T) {
	salary := 500
	emp := dto.EmployeeView{Name: "Ann", Salary: &salary, Department: "IT"}.ToEmployee()

	assert.True(t, emp.IsDraft())
	assert.Equal(t, 500, emp.Salary)
}

func TestWithID_DoesNotAlterOriginal(t *testing.T) {
	orig := dto.EmployeeView{Name: "Ann"}
	withID := orig.WithID(9)

	assert.Nil(t, orig.ID)
	require.NotNil(t, withID.ID)
	assert.Equal(t, int64(9), *withID.ID)
	assert.Equal(t, int64(9), withID.ToEmployee().ID)
}
