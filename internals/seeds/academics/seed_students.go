package academics

import (
	"encoding/json"
	"log"
	"os"
	"time"

	classModel "kursusku_backend/internals/features/academics/classes/model"
	"kursusku_backend/internals/features/academics/students/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentSeed struct {
	StudentName        string `json:"student_name"`
	StudentCode        string `json:"student_code"`
	Phone              string `json:"phone"`
	ClassCode          string `json:"class_code"`
	RegisteredSessions int    `json:"registered_sessions"`
	Status             string `json:"status"`
}

func SeedStudentsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file siswa:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []StudentSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.StudentModel
		if err := db.Where("student_code = ?", data.StudentCode).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Siswa dengan kode '%s' sudah ada, dilewati.", data.StudentCode)
			continue
		}

		// 🔗 resolve kelas aktif dari class_code (opsional)
		var classID *uuid.UUID
		if data.ClassCode != "" {
			var cls classModel.ClassModel
			if err := db.Where("class_code = ?", data.ClassCode).First(&cls).Error; err != nil {
				log.Printf("⚠️ Kelas '%s' untuk siswa '%s' tidak ditemukan, class_id dikosongkan.", data.ClassCode, data.StudentCode)
			} else {
				classID = &cls.ClassID
			}
		}

		status := model.StudentStatus(data.Status)
		if !status.Valid() {
			status = model.StudentStatusActive
		}

		var phone *string
		if data.Phone != "" {
			phone = &data.Phone
		}

		newStudent := model.StudentModel{
			StudentID:                 uuid.New(),
			StudentName:               data.StudentName,
			StudentCode:               data.StudentCode,
			StudentPhone:              phone,
			StudentClassID:            classID,
			StudentRegisteredSessions: data.RegisteredSessions,
			StudentRemainingSessions:  data.RegisteredSessions,
			StudentStatus:             status,
			StudentCreatedAt:          time.Now(),
			StudentUpdatedAt:          time.Now(),
		}

		if err := db.Create(&newStudent).Error; err != nil {
			log.Printf("❌ Gagal insert siswa '%s': %v", data.StudentCode, err)
		} else {
			log.Printf("✅ Berhasil insert siswa '%s'", data.StudentCode)
		}
	}
}
