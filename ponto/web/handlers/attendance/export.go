package attendance

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/core"
	"frigotec.com/frigotec/utils"
	web "frigotec.com/frigotec/web/common"
)

// ExportMonthlyReport streams the monthly report as an .xlsx workbook.
// Same data and same permission rules as MonthlyReport, different
// serialization.
func (ep *Endpoint) ExportMonthlyReport(c *gin.Context) {
	report, status, err := ep.buildMonthlyReport(c)
	if err != nil {
		if status == http.StatusForbidden {
			c.JSON(status, web.NewCodedErrorResponse(core.CodePermissionDenied, "sem permissão", false))
			return
		}
		c.JSON(status, web.NewErrorResponse(err.Error()))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", report.Year, report.Month)
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Dia", "Entrada", "Início Almoço", "Fim Almoço", "Saída", "Horas Trabalhadas", "Atraso", "Falta", "Registros Extras"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range report.Days {
		values := []interface{}{
			fmt.Sprintf("%02d/%02d", row.Day, report.Month),
			orDash(row.Entry),
			orDash(row.LunchStart),
			orDash(row.LunchEnd),
			orDash(row.Exit),
			workedCell(row.WorkedMinutes),
			boolCell(row.Late),
			boolCell(row.Absence),
			row.ExtraEvents,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	summaryRow := len(report.Days) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, cell, "Total")
	cell, _ = excelize.CoordinatesToCellName(6, summaryRow)
	f.SetCellValue(sheet, cell, utils.FormatMinutes(report.Summary.WorkedMinutes))
	cell, _ = excelize.CoordinatesToCellName(8, summaryRow)
	f.SetCellValue(sheet, cell, report.Summary.Absences)

	f.SetColWidth(sheet, "A", "I", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ponto-%s.xlsx", sheet))
	if err := f.Write(c.Writer); err != nil {
		ep.log.Error("xlsx export write failed", zap.Error(err))
	}
}

func orDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

func workedCell(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return utils.FormatMinutes(*minutes)
}

func boolCell(b bool) string {
	if b {
		return "Sim"
	}
	return ""
}
