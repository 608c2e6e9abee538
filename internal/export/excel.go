package export

import (
	"fmt"

	"mlm_platform/internal/domain"

	"github.com/xuri/excelize/v2"
)

// UsersWorkbook builds an xlsx workbook listing the given users, one row
// each, with the columns the admin panel shows.
func UsersWorkbook(users []domain.User) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Users"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"User ID", "Name", "Email", "Mobile", "Sponsor ID", "E-Wallet", "Topup Wallet", "Total Earnings", "Total Withdrawn", "Active", "Joined"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for idx, u := range users {
		row := idx + 2
		active := "no"
		if u.IsActive {
			active = "yes"
		}
		values := []any{
			u.UserID,
			u.FullName,
			u.Email,
			u.Mobile,
			u.SponsorID,
			u.EwalletBalance.StringFixed(2),
			u.TopupBalance.StringFixed(2),
			u.TotalEarnings.StringFixed(2),
			u.TotalWithdrawn.StringFixed(2),
			active,
			u.CreatedAt.Format("2006-01-02"),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "C", 24)
	f.SetColWidth(sheet, "D", "E", 14)
	f.SetColWidth(sheet, "F", "I", 14)
	f.SetColWidth(sheet, "J", "K", 10)

	return f, nil
}

// KycWorkbook builds an xlsx workbook of KYC records joined with the
// submitting user's id and name.
func KycWorkbook(records []domain.KycRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "KYC"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"User ID", "Name", "PAN", "Aadhar", "Bank Name", "Account No", "IFSC", "Status", "Remarks", "Submitted"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for idx, r := range records {
		row := idx + 2
		values := []any{
			r.UserID,
			r.UserName,
			r.PanNumber,
			r.AadharNumber,
			r.BankName,
			r.AccountNumber,
			r.IFSCCode,
			string(r.Status),
			r.Remarks,
			r.CreatedAt.Format("2006-01-02"),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "G", 18)
	f.SetColWidth(sheet, "H", "J", 14)

	return f, nil
}

// Filename returns a dated attachment name like "users_20250131.xlsx".
func Filename(prefix, date string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, date)
}
