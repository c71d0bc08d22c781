package domain

// Employee представляет сотрудника
type Employee struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	Salary     int    `json:"salary" gorm:"not null"`
	Department string `json:"department" gorm:"type:varchar(255);not null"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// IsDraft сообщает, что запись ещё не сохранена в хранилище
func (e *Employee) IsDraft() bool {
	return e.ID == 0
}
