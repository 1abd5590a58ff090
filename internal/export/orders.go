package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fastfoodbot/internal/i18n"
	"fastfoodbot/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Заказы"

var headers = []string{
	"ID", "Дата", "Телефон", "Адрес", "Статус", "Состав",
	"Промокод", "Скидка %", "Сумма, сум", "Комментарий",
}

// OrdersReport строит xlsx с заказами за период. Возвращает файл в памяти,
// вызывающий решает, сохранить его или отдать по HTTP.
func OrdersReport(orders []*models.Order, from, to time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Заказы за период: %s - %s",
		from.Format("02.01.2006"), to.Format("02.01.2006")))

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 3
	var total int64
	for _, order := range orders {
		values := []interface{}{
			order.ID,
			order.CreatedAt.Format("02.01.2006 15:04"),
			order.Phone,
			order.Address,
			i18n.StatusName(models.LangRu, order.Status),
			renderItems(order),
			order.PromoCode,
			order.DiscountPercent,
			order.TotalPrice,
			order.Comment,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		if order.Status != models.StatusCancelled {
			total += order.TotalPrice
		}
		row++
	}

	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	labelCell, _ := excelize.CoordinatesToCellName(len(headers)-2, row)
	totalCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row)
	_ = f.SetCellValue(sheetName, labelCell, "Итого:")
	_ = f.SetCellValue(sheetName, totalCell, total)
	_ = f.SetCellStyle(sheetName, labelCell, totalCell, totalStyle)

	_ = f.SetColWidth(sheetName, "B", "B", 18)
	_ = f.SetColWidth(sheetName, "C", "D", 22)
	_ = f.SetColWidth(sheetName, "F", "F", 40)
	_ = f.SetColWidth(sheetName, "J", "J", 30)

	_ = f.DeleteSheet("Sheet1")
	return f, nil
}

// SaveOrdersReport сохраняет отчет на диск и возвращает путь к файлу.
func SaveOrdersReport(orders []*models.Order, from, to time.Time, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f, err := OrdersReport(orders, from, to)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("orders_%s_to_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	filePath := filepath.Join(dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}
	return filePath, nil
}

func renderItems(order *models.Order) string {
	var parts []string
	for i := range order.Items {
		item := &order.Items[i]
		parts = append(parts, fmt.Sprintf("%s x %d", item.NameRu, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
