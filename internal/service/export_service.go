package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

var ErrExportGenerateFail = pkgerrors.New(pkgerrors.KindInternal, "failed to generate the workbook")

const (
	coverageSheet = "Dekkingsmatrix"
	creditSheet   = "Studiepunten"
)

// ExportService renders cohort dashboards as spreadsheets.
//
// The workbook is returned as a bytes.Buffer; the handler sets the
// response headers and writes it out.
type ExportService interface {
	// ExportCohort builds an .xlsx with the coverage matrix and the credit
	// overview of one cohort. It returns the buffer and a suggested filename.
	ExportCohort(ctx context.Context, cohortID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo      *repository.Repository
	dashboard DashboardService
	logger    *zap.Logger
}

func NewExportService(repo *repository.Repository, dashboard DashboardService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, dashboard: dashboard, logger: logger}
}

func (s *exportService) ExportCohort(ctx context.Context, cohortID string) (*bytes.Buffer, string, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, cohortID)
	if err != nil {
		return nil, "", logInternal(s.logger, "get cohort failed", storeErr(err, ErrCohortNotFound), zap.String("cohort_id", cohortID))
	}
	matrix, err := s.dashboard.CoverageMatrix(ctx, cohortID)
	if err != nil {
		return nil, "", err
	}
	credits, err := s.dashboard.CreditOverview(ctx, cohortID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.generateFailed(err)
	}

	if err := f.SetSheetName("Sheet1", coverageSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if _, err := f.NewSheet(creditSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}

	if err := writeCoverageSheet(f, matrix, header); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if err := writeCreditSheet(f, credits, header); err != nil {
		return nil, "", s.generateFailed(err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}
	return buf, exportFilename(cohort.Name), nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("write workbook failed", zap.Error(err))
	return ErrExportGenerateFail
}

// writeCoverageSheet: one row per outcome, one column per block, "X" where
// the outcome is assessed, then a total column.
func writeCoverageSheet(f *excelize.File, m *dto.CoverageMatrixResponse, header int) error {
	sh := coverageSheet
	rows := [][]interface{}{}

	head := []interface{}{"Code", "Leeruitkomst"}
	for _, c := range m.Columns {
		head = append(head, fmt.Sprintf("J%d %s", c.YearNumber, c.Code))
	}
	head = append(head, "Totaal")
	rows = append(rows, head)

	for _, r := range m.Rows {
		line := []interface{}{r.Code, r.Title}
		for _, hit := range r.Cells {
			if hit {
				line = append(line, "X")
			} else {
				line = append(line, "")
			}
		}
		line = append(line, r.TotalAssessments)
		rows = append(rows, line)
	}

	if err := writeRows(f, sh, rows); err != nil {
		return err
	}
	last := colName(len(head) - 1)
	if err := f.SetCellStyle(sh, "A1", last+"1", header); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "B", "B", 48); err != nil {
		return err
	}
	return f.SetPanes(sh, &excelize.Panes{Freeze: true, XSplit: 2, YSplit: 1, TopLeftCell: "C2", ActivePane: "bottomRight"})
}

// writeCreditSheet: one row per academic year, then the cohort total
// against the program total.
func writeCreditSheet(f *excelize.File, o *dto.CreditOverviewResponse, header int) error {
	sh := creditSheet
	rows := [][]interface{}{
		{"Jaar", "Naam", "Gepland (" + o.Unit + ")", "Doel (" + o.Unit + ")", "Verschil"},
	}
	for _, y := range o.Years {
		rows = append(rows, []interface{}{y.YearNumber, y.Name, y.Credits, y.TargetCredits, y.Difference})
	}
	rows = append(rows, []interface{}{"", "Totaal opleiding", o.TotalCredits, o.ProgramTotalCredits, o.Difference})

	if err := writeRows(f, sh, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "E1", header); err != nil {
		return err
	}
	return f.SetColWidth(sh, "B", "B", 24)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return err
		}
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

// exportFilename turns a cohort name into a filesystem-safe workbook name.
func exportFilename(cohortName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(cohortName))
	if name == "" {
		name = "cohort"
	}
	return "curriculum_" + name + ".xlsx"
}
