package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vtrpza/todo/internal/model"
)

const subtasksSystemPrompt = `Você é um assistente especializado em produtividade e organização.
Divida tarefas complexas em subtarefas menores, mais gerenciáveis e específicas.
Responda APENAS com uma lista de subtarefas (entre 3 e 5), sem explicações ou texto adicional.
Nunca peça mais informações; interprete a tarefa da melhor forma possível.`

var listMarker = regexp.MustCompile(`^[-*\d.\s]+`)

func (c *OpenAIClient) GenerateSubtasks(ctx context.Context, title string) ([]string, error) {
	content, err := c.complete(ctx, subtasksSystemPrompt,
		fmt.Sprintf("Divida a seguinte tarefa em subtarefas menores: %q", title), 0.7, 300)
	if err != nil {
		return nil, err
	}

	subtasks := ParseSubtaskList(content)
	if len(subtasks) == 0 {
		return nil, fmt.Errorf("assist: no subtasks in response")
	}
	return subtasks, nil
}

// ParseSubtaskList extracts subtask titles from a bullet/numbered list,
// capped at five entries.
func ParseSubtaskList(content string) []string {
	out := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == 5 {
			break
		}
	}
	return out
}

const estimateSystemPrompt = `Você é um assistente especializado em gestão de tempo.
Estime o tempo necessário para completar a tarefa, em minutos, com um nível de confiança.
Responda apenas com um JSON no formato: {"estimatedTimeMinutes": X, "confidence": "low|medium|high"}`

func (c *OpenAIClient) EstimateTaskTime(ctx context.Context, title string, category model.Category) (Estimate, error) {
	user := fmt.Sprintf("Estime o tempo para completar esta tarefa: %q", title)
	if category != "" {
		user = fmt.Sprintf("Estime o tempo para completar esta tarefa na categoria %s: %q", category, title)
	}
	content, err := c.complete(ctx, estimateSystemPrompt, user, 0.3, 100)
	if err != nil {
		return Estimate{}, err
	}
	return ParseEstimate(content)
}

// ParseEstimate validates the model's JSON answer and clamps the estimate
// to [1 minute, 24 hours].
func ParseEstimate(content string) (Estimate, error) {
	var e Estimate
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &e); err != nil {
		return Estimate{}, fmt.Errorf("assist: malformed estimate: %w", err)
	}
	switch e.Confidence {
	case "low", "medium", "high":
	default:
		return Estimate{}, fmt.Errorf("assist: unknown confidence %q", e.Confidence)
	}
	if e.EstimatedTimeMinutes < 1 {
		e.EstimatedTimeMinutes = 1
	}
	if e.EstimatedTimeMinutes > 24*60 {
		e.EstimatedTimeMinutes = 24 * 60
	}
	return e, nil
}

const prioritySystemPrompt = `Você é um assistente especializado em priorização de tarefas.
Considere urgência, importância, complexidade aparente e prazos.
Responda APENAS com uma das palavras: "low", "medium" ou "high".`

func (c *OpenAIClient) SuggestPriority(ctx context.Context, title string, existing []string, dueDate *time.Time) (model.Priority, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Tarefa: %q", title)
	if dueDate != nil {
		fmt.Fprintf(&b, "\nData de vencimento: %s", dueDate.Format("2006-01-02"))
	}
	if len(existing) > 0 {
		b.WriteString("\nOutras tarefas existentes:")
		for _, t := range existing {
			fmt.Fprintf(&b, "\n- %s", t)
		}
	}

	content, err := c.complete(ctx, prioritySystemPrompt, b.String(), 0.3, 10)
	if err != nil {
		return "", err
	}
	return ParsePriority(content)
}

// ParsePriority normalizes the model's answer to a priority token.
func ParsePriority(content string) (model.Priority, error) {
	p := model.Priority(strings.Trim(strings.ToLower(strings.TrimSpace(content)), `"'.`))
	if !p.Valid() {
		return "", fmt.Errorf("assist: unknown priority %q", content)
	}
	return p, nil
}

const motivationSystemPrompt = `Você é um assistente motivacional positivo e encorajador.
Gere uma mensagem curta (máximo 2 frases), amigável e entusiasmada, baseada no
progresso do usuário em um aplicativo de produtividade gamificado.`

func (c *OpenAIClient) MotivationalMessage(ctx context.Context, snap ProgressSnapshot) (string, error) {
	user := fmt.Sprintf(
		"Gere uma mensagem motivacional baseada nesses dados:\n- Pontos: %d\n- Nível: %d\n- Sequência de dias: %d\n- Tarefas concluídas hoje: %d",
		snap.Points, snap.Level, snap.Streak, snap.TasksCompletedToday)

	content, err := c.complete(ctx, motivationSystemPrompt, user, 0.8, 150)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("assist: empty motivational message")
	}
	return content, nil
}
