// Package services: AssistantService
//
// This file implements the AssistantService, which answers natural-language
// questions over the caller's own attendance and leave data. It loads the
// caller's rows, serializes them into a fixed persona system instruction, and
// issues one completion request per user message. Any gateway failure is
// swallowed and replaced with a fixed apology: the chat surface never breaks,
// whatever the transport does.
//
// Conversation history is ephemeral. It arrives with the request, is replayed
// to the gateway, and is never persisted.
package services

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zenwork/go-attendance-backend/internal/assistant"
	"github.com/zenwork/go-attendance-backend/internal/domain"
	"github.com/zenwork/go-attendance-backend/internal/repo"
)

// ApologyReply is returned whenever the AI gateway cannot be reached or
// errors out. It matches the product's original Korean-language fallback.
const ApologyReply = "죄송합니다. AI 서비스에 연결하는 중 오류가 발생했습니다."

// personaInstruction is the fixed persona prefix of the system instruction.
const personaInstruction = "당신은 회사 내 근태 및 HR 시스템의 'ZenWork AI'입니다. " +
	"사용자의 근태 기록과 휴가 신청 데이터를 바탕으로 답변하세요. " +
	"사용자에게 친절하고 전문적으로 답변하며, 한국어를 사용하세요. " +
	"출퇴근 시간 분석, 잔여 연차 조언, 인사 규정 안내 등을 수행할 수 있습니다."

// AssistantService answers questions over the caller's attendance and leave
// data via an injected Completer.
type AssistantService struct {
	DB        *gorm.DB
	Completer assistant.Completer

	// MaxPromptRunes caps user prompts; longer input yields ErrPromptTooLong.
	MaxPromptRunes int
}

// NewAssistantService constructs an AssistantService. completer may be nil
// when no API key is configured; Reply then always answers with the apology.
func NewAssistantService(db *gorm.DB, completer assistant.Completer) *AssistantService {
	return &AssistantService{
		DB:             db,
		Completer:      completer,
		MaxPromptRunes: 2000,
	}
}

// Reply validates the prompt, builds the data-grounded system instruction,
// and returns the gateway's completion. Gateway failures are mapped to
// ApologyReply with a nil error; only validation problems are returned as
// errors.
func (s *AssistantService) Reply(ctx context.Context, userID string, history []domain.ChatMessage, prompt string) (string, error) {
	tr := otel.Tracer("services/AssistantService")
	ctx, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(prompt) > s.MaxPromptRunes {
		return "", ErrPromptTooLong
	}

	system, err := s.systemInstruction(ctx, userID)
	if err != nil {
		// Data that fails to load degrades the answer, not the chat.
		system = personaInstruction
	}

	if s.Completer == nil {
		return ApologyReply, nil
	}

	turns := make([]assistant.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, assistant.Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := s.Completer.Complete(ctx, system, turns, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return ApologyReply, nil
	}
	return reply, nil
}

// systemInstruction serializes the caller's attendance and leave rows into
// the persona instruction.
func (s *AssistantService) systemInstruction(ctx context.Context, userID string) (string, error) {
	attendance, err := repo.ListAttendance(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	leaves, err := repo.ListLeaveRequests(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}

	att, err := json.Marshal(attendance)
	if err != nil {
		return "", err
	}
	lv, err := json.Marshal(leaves)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(personaInstruction)
	b.WriteString("\n\n현재 사용자 데이터:\n- 근태 기록: ")
	b.Write(att)
	b.WriteString("\n- 휴가 신청: ")
	b.Write(lv)
	return b.String(), nil
}
