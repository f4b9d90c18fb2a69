package main

import (
	"log"
	"os"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frigotec.com/frigotec/ponto/model"
	"frigotec.com/frigotec/utils"
)

func main() {

	dsn := os.Getenv("DSN") //"root:development@tcp(localhost:3306)/matriz?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	models := []interface{}{
		&model.ClockEvent{},
		&model.WorkLocation{},
		&model.UserProfile{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			err := db.Migrator().CreateTable(m)
			if err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	locations := []model.WorkLocation{
		{ID: "matriz", Name: "Matriz", Latitude: -23.55052, Longitude: -46.633308, Radius: 100, Active: true},
		{ID: "galpao", Name: "Galpão de Manutenção", Latitude: -23.562881, Longitude: -46.654817, Radius: 150, Active: true},
	}
	for _, loc := range locations {
		if err := db.Where(model.WorkLocation{ID: loc.ID}).FirstOrCreate(&loc).Error; err != nil {
			log.Fatalf("failed to seed location %s: %v", loc.ID, err)
		}
	}

	profiles := []model.UserProfile{
		{
			UID:                   "demo-admin",
			Name:                  "Administrador Demo",
			Role:                  model.RoleAdmin,
			RequiresTimeClock:     false,
			CanRegisterAttendance: true,
			CanManageUsers:        true,
		},
		{
			UID:                   "demo-tecnico",
			Name:                  "Técnico Demo",
			Role:                  "tecnico",
			RequiresTimeClock:     true,
			CanRegisterAttendance: true,
			AllowedLocationIDs:    datatypes.JSON([]byte(`["matriz","galpao"]`)),
			ScheduleStart:         "08:00",
			ScheduleEnd:           "17:00",
			LunchMinutes:          60,
			AvatarURL:             utils.Ptr("https://evidence.frigotec.com.br/avatars/demo-tecnico/seed.jpg"),
		},
	}
	for _, p := range profiles {
		if err := db.Where(model.UserProfile{UID: p.UID}).FirstOrCreate(&p).Error; err != nil {
			log.Fatalf("failed to seed profile %s: %v", p.UID, err)
		}
	}
}
