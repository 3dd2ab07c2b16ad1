// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/synergysphere/synergysphere/db"
	"github.com/synergysphere/synergysphere/internal/models"
)

var dbCounter atomic.Int64

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbCounter.Add(1))
	gdb, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.MigrateDatabase(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, gdb *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "not-a-real-hash",
	}
	if err := gdb.WithContext(context.Background()).Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

func CreateProject(t *testing.T, gdb *gorm.DB, creator models.User, title string) models.Project {
	t.Helper()

	project := models.Project{Title: title, CreatedByID: creator.ID}
	if err := gdb.Omit("CreatedBy").Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project %s: %v", title, err)
	}
	return project
}

func AddMember(t *testing.T, gdb *gorm.DB, project models.Project, user models.User) models.TeamMember {
	t.Helper()

	member := models.TeamMember{UserID: user.ID, ProjectID: project.ID, Role: models.RoleMember}
	if err := gdb.Omit("User", "Project").Create(&member).Error; err != nil {
		t.Fatalf("Failed to add member %d to project %d: %v", user.ID, project.ID, err)
	}
	return member
}
