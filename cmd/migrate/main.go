// Command migrate creates the schema and seeds departments plus one
// account per role for a fresh installation.
package main

import (
	"flag"
	"log"

	"letter-routing-api/config"
	"letter-routing-api/models"
	"letter-routing-api/utils"

	"github.com/joho/godotenv"
)

var seedDepartments = []models.Department{
	{Name: "Finance", Code: "FIN"},
	{Name: "Human Resources", Code: "HR"},
	{Name: "Information Technology", Code: "IT"},
	{Name: "Legal Affairs", Code: "LEG"},
	{Name: "Public Works", Code: "PWD"},
}

func main() {
	seed := flag.Bool("seed", false, "seed departments and initial users after migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	if err := config.DB.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Letter{},
		&models.PasswordResetToken{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Schema migrated")

	if !*seed {
		return
	}

	for i := range seedDepartments {
		dept := &seedDepartments[i]
		if err := config.DB.Where("code = ?", dept.Code).FirstOrCreate(dept).Error; err != nil {
			log.Fatalf("failed to seed department %s: %v", dept.Code, err)
		}
	}
	log.Printf("Seeded %d departments", len(seedDepartments))

	finance := seedDepartments[0]
	seedUsers := []models.User{
		{Name: "Record Office", Email: "records@example.gov", Role: models.RoleRecordOffice},
		{Name: "Minister", Email: "minister@example.gov", Role: models.RoleMinister},
		{Name: "Finance Officer", Email: "finance@example.gov", Role: models.RoleDepartment, DepartmentID: &finance.DepartmentID},
	}

	for i := range seedUsers {
		user := &seedUsers[i]

		hashed, err := utils.HashPassword("ChangeMe123!")
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}
		user.Password = hashed
		user.Status = models.UserActive

		if err := config.DB.Where("email = ?", user.Email).FirstOrCreate(user).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", user.Email, err)
		}
	}
	log.Printf("Seeded %d users (default password: ChangeMe123!)", len(seedUsers))
}
