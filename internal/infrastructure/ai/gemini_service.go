// Package ai contiene los adaptadores de visión que leen etiquetas de
// medicamentos a partir de fotos. Ambos hablan con las APIs REST directamente
// con net/http; no se usan los SDKs oficiales.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa VisionService.
var _ ports.VisionService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// visionPrompt define el rol del modelo y el formato de salida.
	// responseMimeType=application/json obliga a Gemini a devolver JSON puro.
	visionPrompt = `Eres un farmacéutico experto leyendo etiquetas de medicamentos y productos hospitalarios.
Analiza las fotos de la etiqueta (pueden ser varias tomas del mismo envase) y devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{
  "name": "<nombre comercial del producto con su concentración, ej: Dipirona 500mg>",
  "lot": "<número de lote impreso, ej: L2024-001>",
  "expiry_date": "<fecha de vencimiento en formato DD/MM/YYYY; si la etiqueta solo trae mes y año usa MM/YYYY>",
  "manufacture_date": "<fecha de fabricación DD/MM/YYYY o MM/YYYY, o vacío si no aparece>",
  "barcode": "<dígitos del código de barras EAN/GTIN si es legible, o vacío>",
  "price": "<precio unitario impreso como número, ej: 8.90, o vacío si no aparece>",
  "confidence": <número entero entre 0 y 100: qué tan legibles fueron los campos>
}

Reglas:
- Transcribe las fechas EXACTAMENTE como están impresas, solo normaliza el separador a "/".
- NUNCA inventes un campo que no sea legible: usa string vacío.
- confidence: 90–100 = etiqueta nítida, 60–89 = parcialmente legible, <60 = borrosa.
- No incluyas texto fuera del JSON.`
)

// GeminiService adaptador de visión sobre la API REST de Google Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64 sin prefijo data:
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// labelPayload es el JSON que esperamos recibir del modelo.
type labelPayload struct {
	Name            string  `json:"name"`
	Lot             string  `json:"lot"`
	ExpiryDate      string  `json:"expiry_date"`
	ManufactureDate string  `json:"manufacture_date"`
	Barcode         string  `json:"barcode"`
	Price           string  `json:"price"`
	Confidence      float64 `json:"confidence"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractLabel envía las fotos a Gemini y devuelve los campos leídos de la
// etiqueta. Las imágenes llegan en base64, con o sin prefijo data:.
func (s *GeminiService) ExtractLabel(ctx context.Context, images []string) (*dto.LabelExtraction, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	parts := []geminiPart{{Text: "Lee la etiqueta en estas fotos."}}
	for _, img := range images {
		mime, data := splitDataURL(img)
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{MIMEType: mime, Data: data},
		})
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: visionPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: parts},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1, // transcripción, no creatividad
			MaxOutputTokens:  512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)

	var label labelPayload
	if err := json.Unmarshal([]byte(rawJSON), &label); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, rawJSON)
	}

	return toExtraction(&label), nil
}

// toExtraction normaliza el payload del modelo al DTO de la aplicación.
func toExtraction(l *labelPayload) *dto.LabelExtraction {
	confidence := l.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}
	codeType := ""
	if l.Barcode != "" {
		codeType = "barcode"
	}
	return &dto.LabelExtraction{
		Name:            strings.TrimSpace(l.Name),
		Lot:             strings.TrimSpace(l.Lot),
		ExpiryDate:      strings.TrimSpace(l.ExpiryDate),
		ManufactureDate: strings.TrimSpace(l.ManufactureDate),
		Barcode:         strings.TrimSpace(l.Barcode),
		CodeType:        codeType,
		Price:           strings.TrimSpace(l.Price),
		Confidence:      confidence,
	}
}

// splitDataURL separa un data URL ("data:image/jpeg;base64,....") en MIME type
// y base64 crudo. Un string sin prefijo se asume JPEG ya en base64.
func splitDataURL(img string) (mime, data string) {
	mime, data = "image/jpeg", img
	if !strings.HasPrefix(img, "data:") {
		return mime, data
	}
	comma := strings.Index(img, ",")
	if comma == -1 {
		return mime, data
	}
	header := img[len("data:"):comma]
	data = img[comma+1:]
	if semi := strings.Index(header, ";"); semi != -1 {
		header = header[:semi]
	}
	if header != "" {
		mime = header
	}
	return mime, data
}
