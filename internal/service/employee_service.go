package service

import (
	"context"
	"errors"
	"math"

	"github.com/employee-api/internal/cache"
	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/dto"
	"github.com/employee-api/internal/repository"
)

const employeeCacheNamespace = "employee"

// EmployeeService определяет интерфейс бизнес-логики для сотрудников.
// Сервис - единственный компонент, который пишет в кэш сотрудников.
type EmployeeService interface {
	List(ctx context.Context, page, pageSize int) ([]dto.EmployeeView, error)
	Get(ctx context.Context, id int64) (dto.EmployeeView, error)
	Save(ctx context.Context, draft dto.EmployeeView) (dto.EmployeeView, error)
	Update(ctx context.Context, view dto.EmployeeView) (dto.EmployeeView, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo repository.EmployeeRepository
	cache   cache.Cache[dto.EmployeeView]
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, viewCache cache.Cache[dto.EmployeeView]) EmployeeService {
	return &employeeService{
		empRepo: empRepo,
		cache:   viewCache,
	}
}

func employeeKey(id int64) string {
	return cache.Key(employeeCacheNamespace, id)
}

func (s *employeeService) List(ctx context.Context, page, pageSize int) ([]dto.EmployeeView, error) {
	// Смещение за пределами int заведомо дальше конца таблицы
	if page < 0 || pageSize <= 0 || page > math.MaxInt/pageSize {
		return []dto.EmployeeView{}, nil
	}

	// Список не кэшируется
	employees, err := s.empRepo.FindPage(ctx, page*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]dto.EmployeeView, len(employees))
	for i := range employees {
		views[i] = dto.FromEmployee(&employees[i])
	}
	return views, nil
}

func (s *employeeService) Get(ctx context.Context, id int64) (dto.EmployeeView, error) {
	return s.cache.GetOrLoad(ctx, employeeKey(id), func(ctx context.Context) (dto.EmployeeView, error) {
		emp, err := s.empRepo.FindByID(ctx, id)
		if err != nil {
			return dto.EmployeeView{}, err
		}
		return dto.FromEmployee(emp), nil
	})
}

func (s *employeeService) Save(ctx context.Context, draft dto.EmployeeView) (dto.EmployeeView, error) {
	emp := draft.ToEmployee()
	if err := s.empRepo.Create(ctx, emp); err != nil {
		return dto.EmployeeView{}, err
	}

	saved := dto.FromEmployee(emp)
	if err := s.cache.Put(context.WithoutCancel(ctx), employeeKey(emp.ID), saved); err != nil {
		return dto.EmployeeView{}, err
	}
	return saved, nil
}

func (s *employeeService) Update(ctx context.Context, view dto.EmployeeView) (dto.EmployeeView, error) {
	if view.ID == nil {
		return dto.EmployeeView{}, domain.Validation("employee id is required for update", nil)
	}

	emp := view.ToEmployee()
	if err := s.empRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrUpdateTargetMissing) {
			return dto.EmployeeView{}, domain.NotFound(err)
		}
		return dto.EmployeeView{}, err
	}

	updated := dto.FromEmployee(emp)
	if err := s.cache.Put(context.WithoutCancel(ctx), employeeKey(emp.ID), updated); err != nil {
		return dto.EmployeeView{}, err
	}
	return updated, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.empRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	return s.cache.Evict(context.WithoutCancel(ctx), employeeKey(id))
}
