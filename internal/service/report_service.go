package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/printlab/printerm/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService turns the plate log into exportable reports. Rows carry
// the same derived costs as the plate listing; totals are summed from the
// rows themselves so report and listing can never disagree.
type ReportService struct {
	plateRepo *repository.PlateRepository
	plates    *PlateService
}

func NewReportService(plateRepo *repository.PlateRepository, plates *PlateService) *ReportService {
	return &ReportService{plateRepo: plateRepo, plates: plates}
}

// ReportTotals are the summed trailer figures of an export.
type ReportTotals struct {
	GramsUsed float64 `json:"grams_used"`
	PriceSold float64 `json:"price_sold"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
}

// Report is the assembled export: one row per plate plus totals.
type Report struct {
	Rows   []PlateView  `json:"rows"`
	Totals ReportTotals `json:"totals"`
}

func (s *ReportService) Build(ctx context.Context, filter repository.ListFilter) (*Report, error) {
	rows, err := s.plates.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{Rows: rows}
	for _, row := range rows {
		report.Totals.GramsUsed += row.GramsUsed
		report.Totals.PriceSold += row.PriceSold
		report.Totals.Cost += row.Cost
		report.Totals.Profit += row.Profit
	}
	return report, nil
}

var reportHeader = []string{"ID", "Date", "User", "Project", "Material", "Grams Used", "Price Sold", "Cost", "Profit"}

// WriteCSV streams the report as CSV: header, one row per plate, then a
// blank line and a Totals trailer.
func (s *ReportService) WriteCSV(report *Report, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.Date.Format("2006-01-02"),
			row.UserName,
			row.ProjectName,
			row.MaterialName,
			fmt.Sprintf("%.1f", row.GramsUsed),
			fmt.Sprintf("%.2f", row.PriceSold),
			fmt.Sprintf("%.2f", row.Cost),
			fmt.Sprintf("%.2f", row.Profit),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotals,,,,%.1f,%.2f,%.2f,%.2f\n",
		report.Totals.GramsUsed,
		report.Totals.PriceSold,
		report.Totals.Cost,
		report.Totals.Profit)
	return err
}

// WriteXLSX renders the report as a single-sheet workbook.
func (s *ReportService) WriteXLSX(report *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for i, row := range report.Rows {
		values := []interface{}{
			row.ID,
			row.Date.Format("2006-01-02"),
			row.UserName,
			row.ProjectName,
			row.MaterialName,
			row.GramsUsed,
			row.PriceSold,
			row.Cost,
			row.Profit,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalsRow := len(report.Rows) + 3
	totals := map[int]interface{}{
		1: "Totals",
		6: report.Totals.GramsUsed,
		7: report.Totals.PriceSold,
		8: report.Totals.Cost,
		9: report.Totals.Profit,
	}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col, totalsRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	return f.Write(w)
}
