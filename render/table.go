// Package render formats query results as markdown tables, the shape the
// assistant and the chat surfaces exchange them in.
package render

import (
	"fmt"
	"strings"

	"imovelmatch/models"
)

func table(header []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Properties renders a listing set as a markdown table.
func Properties(props []models.Property) string {
	header := []string{"property_id", "price", "size", "city", "neighborhood", "street", "bedrooms", "bathrooms", "garage_spots"}
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{
			p.PropertyID,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%.1f", p.Size),
			p.City,
			p.Neighborhood,
			p.Street,
			fmt.Sprintf("%d", p.Bedrooms),
			fmt.Sprintf("%d", p.Bathrooms),
			fmt.Sprintf("%d", p.GarageSpots),
		})
	}
	return table(header, rows)
}

// Slots renders viewing slots as a markdown table.
func Slots(slots []models.ViewingSlot) string {
	header := []string{"property_id", "slot_start", "slot_end", "status"}
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, []string{
			s.PropertyID,
			s.SlotStart.Format("2006-01-02 15:04"),
			s.SlotEnd.Format("2006-01-02 15:04"),
			string(s.Status),
		})
	}
	return table(header, rows)
}
