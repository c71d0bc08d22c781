package repository

import (
	"context"
	"errors"

	"github.com/employee-api/internal/domain"
	"gorm.io/gorm"
)

// ErrUpdateTargetMissing сигнализирует, что строки с указанным id нет.
// Update никогда не вставляет новую запись вместо отсутствующей.
var ErrUpdateTargetMissing = errors.New("update target does not exist")

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	FindPage(ctx context.Context, offset, limit int) ([]domain.Employee, error)
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	DeleteByID(ctx context.Context, id int64) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindPage(ctx context.Context, offset, limit int) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0, limit)
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	// Черновик не должен нести id, иначе GORM вставит строку с чужим ключом
	emp.ID = 0
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	// Save в GORM при отсутствии строки делает INSERT, поэтому обновляем явно
	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", emp.ID).
		Updates(map[string]any{
			"name":       emp.Name,
			"salary":     emp.Salary,
			"department": emp.Department,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUpdateTargetMissing
	}
	return nil
}

func (r *employeeRepository) DeleteByID(ctx context.Context, id int64) error {
	// Удаление несуществующего id не считается ошибкой
	return r.db.WithContext(ctx).Delete(&domain.Employee{}, id).Error
}
