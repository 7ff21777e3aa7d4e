// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finwise/backend/internal/application/adapter"
)

// GeminiService implements adapter.AIReportService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateReport produces a natural-language monthly report from the figures.
func (s *GeminiService) GenerateReport(ctx context.Context, request *adapter.ReportRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.6)

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(request)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

// buildPrompt creates the report prompt for Gemini.
func (s *GeminiService) buildPrompt(request *adapter.ReportRequest) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um consultor financeiro pessoal. Escreva um relatorio mensal curto e objetivo em Portugues Brasileiro sobre as financas do usuario.

REGRAS:
- No maximo 4 paragrafos
- Tom amigavel e direto, sem jargao financeiro
- Comente o saldo, os gastos por categoria mais relevantes e os investimentos
- De no maximo 2 sugestoes praticas de melhoria
- Nao invente numeros; use apenas os valores fornecidos

DADOS DO MES ` + request.Month + "/" + request.Year + ":\n")

	sb.WriteString(fmt.Sprintf("- Saldo: %s\n", request.Balance))
	sb.WriteString(fmt.Sprintf("- Entradas: %s\n", request.DepositsTotal))
	sb.WriteString(fmt.Sprintf("- Gastos: %s\n", request.ExpensesTotal))
	sb.WriteString(fmt.Sprintf("- Investimentos: %s\n", request.InvestmentsTotal))
	sb.WriteString(fmt.Sprintf("- Assinaturas recorrentes: %s\n", request.SubscriptionsTotal))

	if len(request.ExpensesPerCategory) > 0 {
		sb.WriteString("\nGASTOS POR CATEGORIA:\n")
		categories := make([]string, 0, len(request.ExpensesPerCategory))
		for category := range request.ExpensesPerCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", category, request.ExpensesPerCategory[category]))
		}
	}

	sb.WriteString("\nFORMATO DE RESPOSTA: apenas o texto do relatorio, sem titulos nem markdown.\n")
	return sb.String()
}

// extractText pulls the first text part out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text))
		}
	}
	return ""
}
