package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shhac/minisql/internal/errors"
)

var (
	northwind = ConnectionDefinition{
		Name:             "Northwind",
		ProviderName:     "System.Data.SqlClient",
		ConnectionString: "Server=.;Database=Northwind;Integrated Security=SSPI",
	}
	scratch = ConnectionDefinition{
		Name:             "Scratch",
		ProviderName:     "System.Data.SQLite",
		ConnectionString: "Data Source=scratch.db",
	}
)

func TestAddDefinition_AllowsDuplicates(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.AddDefinition(northwind)
	list.AddDefinition(northwind)

	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []ConnectionDefinition{northwind, northwind}, list.Definitions())
}

func TestRemoveDefinition(t *testing.T) {
	t.Run("removes first match only", func(t *testing.T) {
		list := NewConnectionDefinitionList()
		list.SetDefinitions([]ConnectionDefinition{northwind, scratch, northwind})

		assert.True(t, list.RemoveDefinition(northwind))
		assert.Equal(t, []ConnectionDefinition{scratch, northwind}, list.Definitions())
	})

	t.Run("non-member leaves list unchanged", func(t *testing.T) {
		list := NewConnectionDefinitionList()
		list.SetDefinitions([]ConnectionDefinition{northwind, scratch})

		stranger := northwind
		stranger.ConnectionString = "Server=elsewhere"

		assert.False(t, list.RemoveDefinition(stranger))
		assert.Equal(t, []ConnectionDefinition{northwind, scratch}, list.Definitions())
	})
}

func TestReplaceDefinition_KeepsPosition(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.SetDefinitions([]ConnectionDefinition{northwind, scratch})

	edited := northwind
	edited.Comment = "production, read only"

	require.True(t, list.ReplaceDefinition(northwind, edited))
	assert.Equal(t, []ConnectionDefinition{edited, scratch}, list.Definitions())
	assert.False(t, list.ReplaceDefinition(northwind, edited), "old value is gone")
}

func TestDefinitions_ReturnsCopy(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.AddDefinition(northwind)

	defs := list.Definitions()
	defs[0].Name = "mutated"

	got, ok := list.FindByName("Northwind")
	assert.True(t, ok)
	assert.Equal(t, northwind, got)
}

func TestSetDefinitions_CopiesInput(t *testing.T) {
	input := []ConnectionDefinition{northwind}
	list := NewConnectionDefinitionList()
	list.SetDefinitions(input)

	input[0].Name = "mutated"
	assert.Equal(t, "Northwind", list.Definitions()[0].Name)
}

func TestFindByNameAndDefault(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.SetDefinitions([]ConnectionDefinition{northwind, scratch})

	_, ok := list.Default()
	assert.False(t, ok, "no default set")

	list.DefaultName = "Scratch"
	def, ok := list.Default()
	assert.True(t, ok)
	assert.Equal(t, scratch, def)

	list.DefaultName = "Gone"
	_, ok = list.Default()
	assert.False(t, ok, "dangling default resolves to nothing")

	_, ok = list.FindByName("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.SetDefinitions([]ConnectionDefinition{northwind, scratch})
	list.DefaultName = "Northwind"
	assert.NoError(t, list.Validate())

	list.AddDefinition(northwind)
	list.DefaultName = "Gone"

	err := list.Validate()
	require.Error(t, err)

	var verr apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), `duplicate connection name "Northwind"`)
	assert.Contains(t, err.Error(), `default connection "Gone" does not exist`)

	// Validation never alters the list.
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, "Gone", list.DefaultName)
}

func TestConnectionDefinitionList_CloneIsIndependent(t *testing.T) {
	list := NewConnectionDefinitionList()
	list.AddDefinition(ConnectionDefinition{Name: "a"})
	list.DefaultName = "a"

	c := list.Clone()
	c.AddDefinition(ConnectionDefinition{Name: "b"})
	c.ReplaceDefinition(ConnectionDefinition{Name: "a"}, ConnectionDefinition{Name: "a2"})
	c.DefaultName = "b"

	assert.Equal(t, []ConnectionDefinition{{Name: "a"}}, list.Definitions())
	assert.Equal(t, "a", list.DefaultName)
	assert.Equal(t, []ConnectionDefinition{{Name: "a2"}, {Name: "b"}}, c.Definitions())
}
