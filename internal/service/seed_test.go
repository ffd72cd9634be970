package service

import (
	"context"
	"testing"

	"aerocode/backend/internal/dto"
)

func TestSeeder_Idempotent(t *testing.T) {
	repo, store := newMockRepository()
	seeder := NewSeeder(repo, nopLogger())
	ctx := context.Background()

	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("首次 Run 应成功: %v", err)
	}
	counts := []int{len(store.employees), len(store.aircraft), len(store.parts), len(store.stages), len(store.tests)}

	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("重复 Run 应成功: %v", err)
	}
	again := []int{len(store.employees), len(store.aircraft), len(store.parts), len(store.stages), len(store.tests)}
	for i := range counts {
		if counts[i] != again[i] {
			t.Errorf("重复执行不应新增数据: %v → %v", counts, again)
			break
		}
	}
	if len(store.employees) != 3 {
		t.Errorf("期望 3 名种子员工，实际 %d", len(store.employees))
	}
}

func TestSeeder_AdminCanLogin(t *testing.T) {
	svc, store := setupTestServices()
	seeder := NewSeeder(svc.Aircraft.(*aircraftService).repo, nopLogger())
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}

	resp, err := svc.Auth.Login(context.Background(), &dto.LoginRequest{Login: "admin", Password: "admin"})
	if err != nil {
		t.Fatalf("种子管理员应能登录: %v", err)
	}
	if resp.Employee.Login != "admin" {
		t.Errorf("登录员工不符: %+v", resp.Employee)
	}
	if store.employees[resp.Employee.CPF].PasswordHash == "admin" {
		t.Error("种子密码不应明文存储")
	}
}
