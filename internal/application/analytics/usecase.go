// Package analytics contiene el caso de uso de reportes de asistencia: buckets
// diarios, desglose de horas por trabajador y agregados de la ventana completa.
// Solo lectura; corre de forma independiente del tráfico de fichajes.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/timeclock-pro/internal/application/dto"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

// nanosPerHour divisor para convertir duraciones a horas con precisión completa.
var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// AnalyticsUseCase agrega las entradas confirmadas de una ventana [start, end).
//
// Fuente de datos: AnalyticsRepository (un solo scan SQL de la ventana).
// La acumulación interna es a precisión completa; el redondeo a 2 decimales
// ocurre únicamente al construir los DTOs de salida.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// bucket acumulador de un día de calendario (UTC).
type bucket struct {
	date       string
	totalHours decimal.Decimal
	entryCount int
	staff      map[string]struct{}
}

// GetDailyStats construye el reporte completo de la ventana [start, end),
// opcionalmente filtrado por ubicación (locationID vacío = todas).
//
// Reglas de bucketing:
//   - una entrada pertenece a la fecha de calendario (UTC) de su clock_in_time,
//     sin importar cuándo cierra;
//   - las entradas abiertas cuentan en total_shifts y unique_staff_count pero
//     aportan 0 horas;
//   - unique_staff del overall es el conteo distinto sobre toda la ventana, no
//     la suma de los únicos diarios.
func (uc *AnalyticsUseCase) GetDailyStats(ctx context.Context, start, end time.Time, locationID string) (*dto.DailyStatsReportDTO, error) {
	entries, err := uc.analyticsRepo.ListEntriesInWindow(ctx, start, end, locationID)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}

	buckets := make(map[string]*bucket)
	staffHours := make(map[string]decimal.Decimal)
	staffNames := make(map[string]string)
	windowStaff := make(map[string]struct{})

	for _, e := range entries {
		date := e.ClockInTime.UTC().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{date: date, staff: make(map[string]struct{})}
			buckets[date] = b
		}
		b.entryCount++
		b.staff[e.WorkerID] = struct{}{}
		windowStaff[e.WorkerID] = struct{}{}
		staffNames[e.WorkerID] = e.WorkerName

		if e.ClockOutTime != nil {
			hours := hoursBetween(e.ClockInTime, *e.ClockOutTime)
			b.totalHours = b.totalHours.Add(hours)
			staffHours[e.WorkerID] = staffHours[e.WorkerID].Add(hours)
		}
	}

	report := &dto.DailyStatsReportDTO{
		DailyStats:          buildDailyStats(buckets),
		StaffHoursBreakdown: buildStaffBreakdown(staffHours, staffNames),
	}
	report.OverallStats = buildOverallStats(buckets, len(windowStaff))
	return report, nil
}

// hoursBetween duración en horas a precisión completa (nanosegundos / 3.6e12).
func hoursBetween(in, out time.Time) decimal.Decimal {
	return decimal.NewFromInt(out.Sub(in).Nanoseconds()).Div(nanosPerHour)
}

// buildDailyStats ordena los buckets ascendente por fecha y calcula promedios.
func buildDailyStats(buckets map[string]*bucket) []dto.DailyStatDTO {
	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates) // YYYY-MM-DD ordena lexicográfica = cronológicamente

	stats := make([]dto.DailyStatDTO, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		stats = append(stats, dto.DailyStatDTO{
			Date:             b.date,
			TotalHours:       b.totalHours.Round(2),
			TotalShifts:      b.entryCount,
			UniqueStaffCount: len(b.staff),
			AvgHoursPerShift: safeDiv(b.totalHours, b.entryCount),
			AvgHoursPerStaff: safeDiv(b.totalHours, len(b.staff)),
		})
	}
	return stats
}

// buildStaffBreakdown ordena por horas descendente; empates por nombre y luego
// por id para que el reporte sea determinista.
func buildStaffBreakdown(staffHours map[string]decimal.Decimal, staffNames map[string]string) []dto.StaffHoursDTO {
	breakdown := make([]dto.StaffHoursDTO, 0, len(staffHours))
	for workerID, hours := range staffHours {
		breakdown = append(breakdown, dto.StaffHoursDTO{
			WorkerID:   workerID,
			Name:       staffNames[workerID],
			TotalHours: hours.Round(2),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].TotalHours.Equal(breakdown[j].TotalHours) {
			return breakdown[i].TotalHours.GreaterThan(breakdown[j].TotalHours)
		}
		if breakdown[i].Name != breakdown[j].Name {
			return breakdown[i].Name < breakdown[j].Name
		}
		return breakdown[i].WorkerID < breakdown[j].WorkerID
	})
	return breakdown
}

// buildOverallStats agrega todos los buckets; windowStaffCount es el conteo
// distinto de trabajadores sobre la ventana completa.
func buildOverallStats(buckets map[string]*bucket, windowStaffCount int) dto.OverallStatsDTO {
	totalHours := decimal.Zero
	totalShifts := 0
	dailyStaffSum := 0
	for _, b := range buckets {
		totalHours = totalHours.Add(b.totalHours)
		totalShifts += b.entryCount
		dailyStaffSum += len(b.staff)
	}

	overall := dto.OverallStatsDTO{
		TotalHours:       totalHours.Round(2),
		TotalShifts:      totalShifts,
		TotalUniqueStaff: windowStaffCount,
	}
	if len(buckets) > 0 {
		days := decimal.NewFromInt(int64(len(buckets)))
		overall.AvgHoursPerDay = totalHours.Div(days).Round(2)
		overall.AvgPeoplePerDay = decimal.NewFromInt(int64(dailyStaffSum)).Div(days).Round(2)
	}
	return overall
}

// safeDiv promedio redondeado a 2 decimales; 0 si el divisor es cero.
func safeDiv(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}
