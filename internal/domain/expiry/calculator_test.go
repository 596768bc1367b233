package expiry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/expiry"
)

// hoy fijo para todos los tests: 15 de enero de 2025.
var today = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)

func classify(raw string) expiry.Classification {
	return expiry.Classify(raw, today)
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbrales exactos: los límites D-30 y D-90 son inclusivos.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_UmbralesExactos(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		days int
		want entity.Status
	}{
		{"exactamente 30 días es crítico", "14/02/2025", 30, entity.StatusCritical},
		{"31 días es atención", "15/02/2025", 31, entity.StatusWarning},
		{"exactamente 90 días es atención", "15/04/2025", 90, entity.StatusWarning},
		{"91 días es seguro", "16/04/2025", 91, entity.StatusSafe},
		{"vence hoy es crítico", "15/01/2025", 0, entity.StatusCritical},
		{"ya vencido es crítico con días negativos", "10/01/2025", -5, entity.StatusCritical},
		{"1 día es crítico", "16/01/2025", 1, entity.StatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.raw)
			assert.Equal(t, tc.days, got.DaysRemaining, "días restantes para %s", tc.raw)
			assert.Equal(t, tc.want, got.Status, "estado para %s", tc.raw)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato MM/YYYY: se normaliza al último día del mes.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_MesAnioNormalizaAFinDeMes(t *testing.T) {
	// "02/2025" → 28/02/2025: desde el 15/01 son 44 días → warning.
	got := classify("02/2025")
	assert.Equal(t, 44, got.DaysRemaining, "02/2025 debe normalizarse al 28 de febrero")
	assert.Equal(t, entity.StatusWarning, got.Status)
}

func TestClassify_MesAnioEnAnioBisiesto(t *testing.T) {
	// 2024 fue bisiesto: "02/2024" termina el 29.
	bisiesto := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	got := expiry.Classify("02/2024", bisiesto)
	assert.Equal(t, 28, got.DaysRemaining, "del 1 al 29 de febrero bisiesto hay 28 días")
	assert.Equal(t, entity.StatusCritical, got.Status)
}

func TestClassify_MesAnioDelMesCorriente(t *testing.T) {
	// "01/2025" → 31/01/2025, a 16 días del hoy fijo: crítico.
	got := classify("01/2025")
	assert.Equal(t, 16, got.DaysRemaining)
	assert.Equal(t, entity.StatusCritical, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas malformadas: nunca rompen, siempre {safe, 0}.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_EntradasIlegiblesSonSeguras(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"sin fecha",
		"2025",
		"32/01/2025",
		"01/13/2025",
		"00/06/2025",
		"15/00/2025",
		"aa/bb/cccc",
		"15-06-2025",
		"1/2/3/4",
	}
	for _, raw := range cases {
		got := classify(raw)
		assert.Equal(t, entity.StatusSafe, got.Status, "entrada %q no debe disparar alarmas", raw)
		assert.Equal(t, 0, got.DaysRemaining, "entrada %q debe reportar 0 días", raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Estabilidad: el resultado no depende de la hora del día.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_EstableDuranteTodoElDia(t *testing.T) {
	madrugada := time.Date(2025, time.January, 15, 0, 0, 1, 0, time.UTC)
	noche := time.Date(2025, time.January, 15, 23, 59, 59, 0, time.UTC)

	a := expiry.Classify("20/03/2025", madrugada)
	b := expiry.Classify("20/03/2025", noche)
	assert.Equal(t, a, b, "la hora del día no debe alterar el cálculo")
}

func TestClassify_Determinista(t *testing.T) {
	first := classify("10/06/2025")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, classify("10/06/2025"), "misma entrada, mismo resultado")
	}
}
