package service

import (
	"testing"

	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/database/model"

	"github.com/stretchr/testify/assert"
)

func countTags(t *testing.T) int64 {
	t.Helper()
	var count int64
	assert.NoError(t, database.GetDB().Model(model.Tag{}).Count(&count).Error)
	return count
}

func TestTagServiceParseNames(t *testing.T) {
	service := TagService{}

	assert.Equal(t, []string{"sketch", "ink"}, service.ParseNames("sketch, ink"))
	assert.Equal(t, []string{"a", "b"}, service.ParseNames(" a ,, b , "))
	assert.Empty(t, service.ParseNames(""))
	assert.Empty(t, service.ParseNames(" , ,"))
}

func TestTagServiceResolveGetOrCreate(t *testing.T) {
	setup(t)
	service := TagService{}

	first, err := service.Resolve([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, int64(2), countTags(t))

	// overlapping names reuse existing rows
	second, err := service.Resolve([]string{"b", "c"})
	assert.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, int64(3), countTags(t))

	assert.Equal(t, first[1].Id, second[0].Id)
}

func TestTagServiceResolveCollapsesDuplicates(t *testing.T) {
	setup(t)
	service := TagService{}

	tags, err := service.Resolve([]string{"ink", "ink", "ink"})
	assert.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, int64(1), countTags(t))
}

func TestTagServiceResolveCaseSensitive(t *testing.T) {
	setup(t)
	service := TagService{}

	tags, err := service.Resolve([]string{"Ink", "ink"})
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, int64(2), countTags(t))
}
