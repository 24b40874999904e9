package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oilbook/internal/core/entity"
	"oilbook/internal/core/id"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	Memo string `db:"-" json:"memo"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{"id", "version", "office_id", "active", "code", "name"}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "memo")
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	officeID := id.New()
	cat := mockCatalog{
		BaseCatalog: entity.NewBaseCatalog(officeID),
		Code:        "PRD0001",
		Name:        "ดีเซล B7",
		Memo:        "excluded",
	}
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, officeID, m["office_id"])
	assert.Equal(t, true, m["active"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "PRD0001", m["code"])
	assert.Equal(t, "ดีเซล B7", m["name"])
	_, hasMemo := m["memo"]
	assert.False(t, hasMemo)
}
