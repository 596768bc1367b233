// Package expiry implementa el cálculo de vencimiento de lotes (servicio de dominio).
//
// La fecha de la etiqueta llega como "DD/MM/YYYY" o "MM/YYYY". Una fecha de
// solo mes/año se normaliza al ÚLTIMO día de ese mes: un producto no se
// considera vencido hasta que su mes de vencimiento completo haya transcurrido.
package expiry

import (
	"strconv"
	"strings"
	"time"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

// Umbrales de clasificación en días (inclusivos): D-30 crítico, D-90 atención.
const (
	CriticalThresholdDays = 30
	WarningThresholdDays  = 90
)

// Classification resultado puro del cálculo de vencimiento.
type Classification struct {
	Status        entity.Status
	DaysRemaining int
}

// Classify calcula estado y días restantes de una fecha de vencimiento.
//
// Reglas:
//   - "DD/MM/YYYY" se parsea literal; "MM/YYYY" se normaliza a fin de mes.
//   - Entrada vacía, malformada o no parseable → {safe, 0} (fail-open: una
//     fecha ilegible no debe disparar alarmas espurias; ver DESIGN.md).
//   - Ambos instantes se truncan a medianoche antes de restar, de modo que el
//     resultado es estable durante todo el día calendario sin importar la hora.
//   - daysRemaining = ceil(Δ / 24h); exactamente 30 días → critical,
//     exactamente 90 → warning, 91 → safe.
//
// Puro y determinista: la misma fecha con el mismo today produce siempre el
// mismo resultado.
func Classify(raw string, today time.Time) Classification {
	failOpen := Classification{Status: entity.StatusSafe, DaysRemaining: 0}

	expiry, ok := parseDate(strings.TrimSpace(raw))
	if !ok {
		return failOpen
	}

	todayMid := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := ceilDays(expiry.Sub(todayMid))

	return Classification{Status: statusForDays(days), DaysRemaining: days}
}

// statusForDays aplica los umbrales en orden: ≤30 crítico, ≤90 atención, resto seguro.
func statusForDays(days int) entity.Status {
	switch {
	case days <= CriticalThresholdDays:
		return entity.StatusCritical
	case days <= WarningThresholdDays:
		return entity.StatusWarning
	default:
		return entity.StatusSafe
	}
}

// parseDate acepta "DD/MM/YYYY" y "MM/YYYY" (fin de mes). Devuelve la fecha a
// medianoche UTC, o ok=false si la entrada no es parseable.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	parts := strings.Split(raw, "/")

	switch len(parts) {
	case 3:
		day, okD := parseField(parts[0], 1, 31)
		month, okM := parseField(parts[1], 1, 12)
		year, okY := parseYear(parts[2])
		if !okD || !okM || !okY {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	case 2:
		month, okM := parseField(parts[0], 1, 12)
		year, okY := parseYear(parts[1])
		if !okM || !okY {
			return time.Time{}, false
		}
		// Día 0 del mes siguiente = último día del mes (maneja años bisiestos).
		return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

func parseField(s string, min, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

func parseYear(s string) (int, bool) {
	return parseField(s, 1, 9999)
}

// ceilDays convierte una duración entre medianoches a días enteros con
// redondeo hacia arriba (una fracción de día pendiente cuenta como día entero).
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}
