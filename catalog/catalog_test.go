package catalog

import (
	"testing"

	"github.com/alecthomas/assert"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 3, c.Len())
	d, ok := c.FindByID("2")
	assert.True(t, ok)
	assert.Equal(t, "Dra. Maria Santos", d.Name)
	assert.Equal(t, "Dermatologista", d.Specialty)

	_, ok = c.FindByID("4")
	assert.False(t, ok)
	_, ok = c.FindByID("")
	assert.False(t, ok)

	ids := []string{}
	for _, d := range c.All() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestAllIsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "changed"
	d, _ := c.FindByID("1")
	assert.Equal(t, "Dr. João Silva", d.Name)
}

func TestDuplicateID(t *testing.T) {
	c := New(Doctor{ID: "1", Name: "first"}, Doctor{ID: "1", Name: "second"})
	assert.Equal(t, 1, c.Len())
	d, _ := c.FindByID("1")
	assert.Equal(t, "first", d.Name)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.FindByID("1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
}
