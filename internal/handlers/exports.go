package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/wedding-marketplace/backend/internal/genie"
)

const (
	rowTypeVenue    = "venue"
	rowTypeCategory = "category"
	rowTypeTotals   = "totals"
)

// ExportCSV выгружает сохраненный план в CSV-файл: площадка, категории и итоги.
func (h *SavedPlanHandler) ExportCSV(c echo.Context) error {
	saved, err := h.load(c)
	if err != nil {
		return err
	}
	if saved == nil {
		return nil
	}

	var plan genie.PlanResult
	if err := json.Unmarshal(saved.Result, &plan); err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writePlanCSV(writer, saved.ID, plan); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "genie-plan-" + saved.ID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writePlanCSV(writer *csv.Writer, planID uuid.UUID, plan genie.PlanResult) error {
	header := []string{
		"saved_plan_id",
		"row_type",
		"category_id",
		"category_name",
		"allocated_min",
		"allocated_mid",
		"allocated_max",
		"vendor_name",
		"vendor_price",
		"is_fallback",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	venue := plan.Venue
	if err := writer.Write([]string{
		planID.String(),
		rowTypeVenue,
		"",
		genie.CategoryVenue,
		formatInt64(venue.PriceMin),
		formatInt64(venue.PriceMid),
		formatInt64(venue.PriceMax),
		venue.Selected.Name,
		formatInt64(venue.Selected.EstimatedPrice),
		formatBool(false),
	}); err != nil {
		return err
	}

	for _, alloc := range plan.CategoryAllocations {
		var name, price, fallback string
		if top := plan.CategoryVendorCandidates[alloc.CategoryID]; len(top) > 0 {
			name = top[0].Name
			if top[0].ActualPrice != nil {
				price = formatInt64(*top[0].ActualPrice)
			}
			fallback = formatBool(top[0].IsFallback)
		}

		record := []string{
			planID.String(),
			rowTypeCategory,
			alloc.CategoryID.String(),
			alloc.CategoryName,
			formatInt64(alloc.AllocatedMin),
			formatInt64(alloc.AllocatedMid),
			formatInt64(alloc.AllocatedMax),
			name,
			price,
			fallback,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Write([]string{
		planID.String(),
		rowTypeTotals,
		"",
		"",
		formatInt64(plan.Totals.TotalMin),
		formatInt64(plan.Totals.TotalMid),
		formatInt64(plan.Totals.TotalMax),
		"",
		"",
		"",
	})
}

func formatInt64(value int64) string {
	return strconv.FormatInt(value, 10)
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
