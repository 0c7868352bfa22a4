package seeds

import (
	academics "kursusku_backend/internals/seeds/academics"

	"gorm.io/gorm"
)

// RunAllSeeds mengisi data awal untuk environment dev/demo.
// Seeder idempoten: baris yang sudah ada (berdasarkan kode unik) dilewati.
func RunAllSeeds(db *gorm.DB) {
	//* Academics
	academics.SeedClassesFromJSON(db, "internals/seeds/academics/data_classes.json")
	academics.SeedStudentsFromJSON(db, "internals/seeds/academics/data_students.json")
}
