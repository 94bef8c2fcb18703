// Package catalog is the read-only list of doctors that can be booked.
// Appointments refer to a doctor by ID only.
package catalog

type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	ImageURL  string `json:"imageUrl"`
}

// Catalog is safe for concurrent use because it never changes after New()
type Catalog struct {
	doctors []Doctor
	byID    map[string]int
}

// New builds a catalog. For duplicate IDs the first doctor wins.
func New(doctors ...Doctor) *Catalog {
	c := &Catalog{
		byID: make(map[string]int, len(doctors)),
	}
	for _, d := range doctors {
		if _, dup := c.byID[d.ID]; dup {
			continue
		}
		c.byID[d.ID] = len(c.doctors)
		c.doctors = append(c.doctors, d)
	}
	return c
}

// Default is the built-in catalog
func Default() *Catalog {
	return New(
		Doctor{
			ID:        "1",
			Name:      "Dr. João Silva",
			Specialty: "Cardiologista",
			ImageURL:  "https://mighty.tools/mockmind-api/content/human/91.jpg",
		},
		Doctor{
			ID:        "2",
			Name:      "Dra. Maria Santos",
			Specialty: "Dermatologista",
			ImageURL:  "https://mighty.tools/mockmind-api/content/human/97.jpg",
		},
		Doctor{
			ID:        "3",
			Name:      "Dr. Pedro Oliveira",
			Specialty: "Oftalmologista",
			ImageURL:  "https://mighty.tools/mockmind-api/content/human/79.jpg",
		},
	)
}

func (c *Catalog) FindByID(id string) (Doctor, bool) {
	if c == nil {
		return Doctor{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Doctor{}, false
	}
	return c.doctors[i], true
}

// All returns a copy, in catalog order
func (c *Catalog) All() []Doctor {
	if c == nil {
		return nil
	}
	return append([]Doctor(nil), c.doctors...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.doctors)
}
