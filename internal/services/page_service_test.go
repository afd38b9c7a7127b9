// internal/services/page_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lojinha/lojinha-backend/internal/models"
)

func pageComponents(ids ...uuid.UUID) []models.PageComponent {
	components := make([]models.PageComponent, len(ids))
	for i, id := range ids {
		components[i].ID = id
		components[i].OrderIndex = i
	}
	return components
}

func TestValidateReorderAcceptsPermutation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	components := pageComponents(a, b, c)

	assert.NoError(t, validateReorder(components, []uuid.UUID{c, a, b}))
}

func TestValidateReorderRejectsDuplicateID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	components := pageComponents(a, b)

	err := validateReorder(components, []uuid.UUID{a, a})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listed more than once")
}

func TestValidateReorderRejectsForeignID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	components := pageComponents(a, b)

	err := validateReorder(components, []uuid.UUID{a, uuid.New()})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}

func TestValidateReorderRejectsWrongLength(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	components := pageComponents(a, b)

	assert.Error(t, validateReorder(components, []uuid.UUID{a}))
	assert.Error(t, validateReorder(components, []uuid.UUID{a, b, b}))
}
