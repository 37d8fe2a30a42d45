package postgres

import (
	"testing"

	"tasker/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestTaskOrder(t *testing.T) {
	tieBreakers := []clause.OrderByColumn{
		{Column: clause.Column{Name: "created_at"}},
		{Column: clause.Column{Name: "id"}},
	}

	assert.Equal(t, tieBreakers, taskOrder(nil))
	assert.Equal(t, tieBreakers, taskOrder(&entity.TaskSort{Field: "owner"}))

	columns := taskOrder(&entity.TaskSort{Field: entity.TaskSortCompleted, Descending: true})
	require.Len(t, columns, 3)
	assert.Equal(t, clause.OrderByColumn{Column: clause.Column{Name: "completed"}, Desc: true}, columns[0])
	assert.Equal(t, tieBreakers, columns[1:])
}

func TestTaskOrder_DescriptionUsesByteCollation(t *testing.T) {
	columns := taskOrder(&entity.TaskSort{Field: entity.TaskSortDescription})
	require.Len(t, columns, 3)

	first := columns[0]
	assert.True(t, first.Column.Raw)
	assert.Equal(t, `"description" COLLATE "C"`, first.Column.Name)
	assert.False(t, first.Desc)
}
