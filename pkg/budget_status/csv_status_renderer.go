package budget_status

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatusRenderer interface {
	Render(summary Summary) (string, error)
}

type CsvStatusRendererImpl struct {
}

func NewCsvStatusRenderer() *CsvStatusRendererImpl {
	return &CsvStatusRendererImpl{}
}

func (t *CsvStatusRendererImpl) Render(summary Summary) (string, error) {
	data := make([][]string, 0, len(summary.Categories)+2)
	data = append(data, []string{"Category", "Budgeted", "Spent", "Remaining", "Percentage", "Status"})
	for _, c := range summary.Categories {
		data = append(data, []string{
			string(c.Category),
			strconv.Itoa(c.Budgeted),
			strconv.Itoa(c.Spent),
			strconv.Itoa(c.Remaining),
			formatPercentage(c.Percentage),
			string(c.Status),
		})
	}
	totalPercentage := 0.0
	if summary.TotalBudgeted != 0 {
		totalPercentage = float64(summary.TotalSpent) * 100 / float64(summary.TotalBudgeted)
	}
	data = append(data, []string{
		"SUM",
		strconv.Itoa(summary.TotalBudgeted),
		strconv.Itoa(summary.TotalSpent),
		strconv.Itoa(summary.TotalRemaining),
		formatPercentage(totalPercentage),
		"",
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func formatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
