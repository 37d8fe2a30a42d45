package postgres

import (
	"context"
	"strings"
	"time"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Descriptions sort by byte value, matching the in-memory store regardless of
// the database collation.
var taskSortColumns = map[entity.TaskSortField]clause.Column{
	entity.TaskSortDescription: {Name: `"description" COLLATE "C"`, Raw: true},
	entity.TaskSortCompleted:   {Name: "completed"},
	entity.TaskSortCreatedAt:   {Name: "created_at"},
	entity.TaskSortUpdatedAt:   {Name: "updated_at"},
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// taskRepository implements the domain.TaskRepository interface using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserNotFound, "task owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// FindByIDAndOwner retrieves a task only when it belongs to the owner.
func (repo *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	return toTaskDomain(&taskM), nil
}

// List returns the owner's tasks narrowed, ordered and paged by the query.
func (repo *taskRepository) List(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("owner_id = ?", query.OwnerID)

	if query.Completed != nil {
		tx = tx.Where("completed = ?", *query.Completed)
	}
	if query.Filter != "" {
		tx = tx.Where("description ILIKE ?", "%"+likeEscaper.Replace(query.Filter)+"%")
	}

	tx = tx.Clauses(clause.OrderBy{Columns: taskOrder(query.Sort)})

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit).Offset(query.Offset())
	}

	var taskMs []model.TaskModel
	if err := tx.Find(&taskMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for i := range taskMs {
		tasks = append(tasks, toTaskDomain(&taskMs[i]))
	}

	return tasks, nil
}

// taskOrder puts the requested sort first. Creation order breaks ties and is the default.
func taskOrder(sort *entity.TaskSort) []clause.OrderByColumn {
	columns := make([]clause.OrderByColumn, 0, 3)
	if sort != nil {
		if column, ok := taskSortColumns[sort.Field]; ok {
			columns = append(columns, clause.OrderByColumn{Column: column, Desc: sort.Descending})
		}
	}

	return append(columns,
		clause.OrderByColumn{Column: clause.Column{Name: "created_at"}},
		clause.OrderByColumn{Column: clause.Column{Name: "id"}},
	)
}

// Update saves description and completion of an owned task.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	taskM.UpdatedAt = time.Now()
	result := repo.db.WithContext(ctx).
		Model(taskM).
		Where("owner_id = ?", task.OwnerID).
		Select("description", "completed", "updated_at").
		Updates(taskM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// DeleteByIDAndOwner removes an owned task and returns it.
func (repo *taskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	var taskMs []model.TaskModel
	result := repo.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&taskMs)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 || len(taskMs) == 0 {
		return nil, repository.ErrTaskNotFound
	}

	return toTaskDomain(&taskMs[0]), nil
}

// DeleteByOwner removes every task of the owner.
func (repo *taskRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.TaskModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete tasks of owner")
	}

	return nil
}

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		Description: data.Description,
		Completed:   data.Completed,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		Description: data.Description,
		Completed:   data.Completed,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
