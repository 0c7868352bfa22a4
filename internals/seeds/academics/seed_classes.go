package academics

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"kursusku_backend/internals/features/academics/classes/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ClassSeed struct {
	ClassName    string   `json:"class_name"`
	ClassCode    string   `json:"class_code"`
	MeetingDays  []string `json:"meeting_days"`
	SessionTotal int      `json:"session_total"`
	Note         string   `json:"note"`
}

func SeedClassesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []ClassSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.ClassModel
		if err := db.Where("class_code = ?", data.ClassCode).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Kelas dengan kode '%s' sudah ada, dilewati.", data.ClassCode)
			continue
		}

		var note *string
		if data.Note != "" {
			note = &data.Note
		}

		newClass := model.ClassModel{
			ClassID:           uuid.New(),
			ClassName:         data.ClassName,
			ClassCode:         data.ClassCode,
			ClassMeetingDays:  pq.StringArray(data.MeetingDays),
			ClassSessionTotal: data.SessionTotal,
			ClassNote:         note,
			ClassCreatedAt:    time.Now(),
			ClassUpdatedAt:    time.Now(),
		}

		if err := db.Create(&newClass).Error; err != nil {
			log.Printf("❌ Gagal insert kelas '%s': %v", data.ClassCode, err)
		} else {
			log.Printf("✅ Berhasil insert kelas '%s'", data.ClassCode)
		}
	}
}
