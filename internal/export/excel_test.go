package export

import (
	"testing"
	"time"

	"mlm_platform/internal/domain"

	"github.com/shopspring/decimal"
)

func TestUsersWorkbook(t *testing.T) {
	users := []domain.User{
		{
			UserID:         "123456",
			FullName:       "Alice Example",
			Email:          "alice@example.com",
			SponsorID:      "654321",
			EwalletBalance: decimal.NewFromFloat(150.50),
			TopupBalance:   decimal.NewFromInt(1000),
			IsActive:       true,
			CreatedAt:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	f, err := UsersWorkbook(users)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	got, err := f.GetCellValue("Users", "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "123456" {
		t.Errorf("A2 = %q, want 123456", got)
	}

	got, _ = f.GetCellValue("Users", "F2")
	if got != "150.50" {
		t.Errorf("F2 = %q, want 150.50", got)
	}

	got, _ = f.GetCellValue("Users", "J2")
	if got != "yes" {
		t.Errorf("J2 = %q, want yes", got)
	}
}

func TestKycWorkbook(t *testing.T) {
	records := []domain.KycRecord{
		{
			UserID:    "123456",
			UserName:  "Alice Example",
			PanNumber: "ABCDE1234F",
			Status:    domain.KycPending,
			CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	f, err := KycWorkbook(records)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	got, _ := f.GetCellValue("KYC", "C2")
	if got != "ABCDE1234F" {
		t.Errorf("C2 = %q, want ABCDE1234F", got)
	}
	got, _ = f.GetCellValue("KYC", "H2")
	if got != "pending" {
		t.Errorf("H2 = %q, want pending", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("users", "20250301"); got != "users_20250301.xlsx" {
		t.Errorf("Filename = %q", got)
	}
}
