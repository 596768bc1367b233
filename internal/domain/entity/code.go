package entity

import "crypto/rand"

// internalCodeAlphabet excluye caracteres ambiguos (I, O, 0, 1).
const internalCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewInternalCode genera el código interno de auditoría del lote: 6 caracteres
// sobre un alfabeto sin ambiguos, legible en etiquetas impresas.
func NewInternalCode() string {
	var buf [6]byte
	// crypto/rand.Read no falla en plataformas soportadas.
	_, _ = rand.Read(buf[:])
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = internalCodeAlphabet[int(b)%len(internalCodeAlphabet)]
	}
	return string(out)
}
