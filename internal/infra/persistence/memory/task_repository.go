package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"tasker/internal/domain/entity"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
)

type taskRepository struct {
	store *Store
	inTx  bool
}

// NewTaskRepository returns a task repository over the store.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (repo *taskRepository) Create(_ context.Context, task *entity.Task) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		if _, ok := d.users[task.OwnerID]; !ok {
			return repository.ErrUserNotFound
		}
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
		now := repo.store.now()
		task.CreatedAt = now
		task.UpdatedAt = now

		d.seq++
		d.tasks[task.ID] = taskRecord{task: *task, seq: d.seq}

		return nil
	})
}

func (repo *taskRepository) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	var found *entity.Task
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		record, ok := d.tasks[id]
		if !ok || record.task.OwnerID != ownerID {
			return repository.ErrTaskNotFound
		}
		task := record.task
		found = &task

		return nil
	})

	return found, err
}

func (repo *taskRepository) List(_ context.Context, query entity.TaskQuery) ([]*entity.Task, error) {
	var records []taskRecord
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		filter := strings.ToLower(query.Filter)
		for _, record := range d.tasks {
			if record.task.OwnerID != query.OwnerID {
				continue
			}
			if query.Completed != nil && record.task.Completed != *query.Completed {
				continue
			}
			if filter != "" && !strings.Contains(strings.ToLower(record.task.Description), filter) {
				continue
			}
			records = append(records, record)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b taskRecord) int {
		if query.Sort != nil {
			if c := compareTasks(a.task, b.task, query.Sort.Field); c != 0 {
				if query.Sort.Descending {
					return -c
				}

				return c
			}
		}

		return cmp.Compare(a.seq, b.seq)
	})

	if query.Limit > 0 {
		offset := min(query.Offset(), len(records))
		end := offset + min(query.Limit, len(records)-offset)
		records = records[offset:end]
	}

	tasks := make([]*entity.Task, 0, len(records))
	for _, record := range records {
		task := record.task
		tasks = append(tasks, &task)
	}

	return tasks, nil
}

func compareTasks(a, b entity.Task, field entity.TaskSortField) int {
	switch field {
	case entity.TaskSortDescription:
		return cmp.Compare(a.Description, b.Description)
	case entity.TaskSortCompleted:
		return compareBool(a.Completed, b.Completed)
	case entity.TaskSortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case entity.TaskSortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func (repo *taskRepository) Update(_ context.Context, task *entity.Task) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		record, ok := d.tasks[task.ID]
		if !ok || record.task.OwnerID != task.OwnerID {
			return repository.ErrTaskNotFound
		}
		record.task.Description = task.Description
		record.task.Completed = task.Completed
		record.task.UpdatedAt = repo.store.now()
		d.tasks[task.ID] = record

		task.UpdatedAt = record.task.UpdatedAt

		return nil
	})
}

func (repo *taskRepository) DeleteByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	var deleted *entity.Task
	err := repo.store.access(repo.inTx, true, func(d *dataset) error {
		record, ok := d.tasks[id]
		if !ok || record.task.OwnerID != ownerID {
			return repository.ErrTaskNotFound
		}
		delete(d.tasks, id)
		task := record.task
		deleted = &task

		return nil
	})

	return deleted, err
}

func (repo *taskRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		for id, record := range d.tasks {
			if record.task.OwnerID == ownerID {
				delete(d.tasks, id)
			}
		}

		return nil
	})
}
