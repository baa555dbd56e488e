//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	repo "github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
)

const (
	migrationsDir = "assets/migrations"
	seedsDir      = "assets/seeds"
)

func TestEmployeeCRUDIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	if err := applySeeds(cfg.Database.DSN(), seedsDir); err != nil {
		t.Fatalf("failed to apply seeds: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	employeeRepo := repo.NewEmployeeRepository(pool)
	svc := employee.NewService(employeeRepo, pg.NewTransactionManager(pool))

	// シードで投入された Alice が id=1 で存在すること。
	found, err := svc.GetEmployee(ctx, 1)
	if err != nil {
		t.Fatalf("GetEmployee(1) error: %v", err)
	}
	if found.Name != "Alice" || found.DepartmentCode != "D1" || found.Salary != 1000 {
		t.Fatalf("unexpected seeded employee: %+v", found)
	}

	if _, err := svc.GetEmployee(ctx, 99); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("GetEmployee(99): expected ErrEmployeeNotFound, got %v", err)
	}

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{
		ID:             1,
		Name:           "Alice",
		DepartmentCode: "D2",
		Salary:         1500,
	})
	if err != nil {
		t.Fatalf("UpdateEmployee error: %v", err)
	}
	if updated.ID != 1 || updated.DepartmentCode != "D2" || updated.Salary != 1500 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{ID: 99, Name: "Ghost", DepartmentCode: "D9", Salary: 1}); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("update of absent id: expected ErrEmployeeNotFound, got %v", err)
	}

	all, err := svc.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("update of absent id must not create records: expected 1, got %d", len(all))
	}

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeInput{Name: "Bob", DepartmentCode: "D3", Salary: 900})
	if err != nil {
		t.Fatalf("CreateEmployee error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	deleted, err := svc.DeleteEmployee(ctx, 1)
	if err != nil {
		t.Fatalf("DeleteEmployee error: %v", err)
	}
	if deleted.DepartmentCode != "D2" || deleted.Salary != 1500 {
		t.Fatalf("expected pre-deletion snapshot, got %+v", deleted)
	}

	if _, err := svc.GetEmployee(ctx, 1); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func applySeeds(dsn, dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	// シードは本体のマイグレーション履歴と衝突しないよう別テーブルで管理します。
	m, err := migrate.New("file://"+dir, dsn+"&x-migrations-table=seed_migrations")
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}
